package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type EventsConfig struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientId string `json:"clientId"`
	Topic    string `json:"topic"`
	Username string `json:"username"`
	Password string `json:"password"`
	// QueueSize is the number of events buffered while the broker is slow or unreachable
	QueueSize int `json:"queueSize"`
}
