package devices

import (
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/exp/slices"
)

const (
	IdPower  = "power"
	IdLight  = "light"
	IdFan    = "fan"
	IdSensor = "sensor"
)

// Device is anything that can report a status snapshot
type Device interface {
	GetId() string
	Snapshot() any
}

// Switch is a device that can be switched on and off
type Switch interface {
	Device
	On() error
	Off() error
	IsOn() bool
}

var (
	_ Switch = (*Relay)(nil)
	_ Switch = (*Fan)(nil)
	_ Device = (*InputSensor)(nil)
)

// Registry maps device ids to devices and is safe for concurrent use
type Registry struct {
	devices cmap.ConcurrentMap[string, Device]
}

func NewRegistry(devices ...Device) *Registry {
	r := &Registry{devices: cmap.New[Device]()}
	for _, device := range devices {
		r.Register(device)
	}
	return r
}

func (r *Registry) Register(device Device) {
	r.devices.Set(device.GetId(), device)
}

func (r *Registry) Get(id string) (Device, bool) {
	return r.devices.Get(id)
}

// Ids returns the sorted ids of all registered devices
func (r *Registry) Ids() []string {
	ids := r.devices.Keys()
	slices.Sort(ids)
	return ids
}

// Snapshots returns the status of every registered device, keyed by id
func (r *Registry) Snapshots() map[string]any {
	result := map[string]any{}
	for id, device := range r.devices.Items() {
		result[id] = device.Snapshot()
	}
	return result
}
