package loopback

import (
	"runtime"

	"vkdebug/internal/vk"
)

// Deliver calls the callback in info with ev, bypassing registration state and filters.
// It is how a misbehaving driver would reuse a stale callback/user-data pair.
func Deliver(info vk.DebugUtilsMessengerCreateInfo, ev Event) (vk.Bool32, error) {
	data, err := ev.record()
	if err != nil {
		return vk.False, err
	}
	ret := info.PfnUserCallback(ev.Severity, ev.Types, data, info.PUserData)
	runtime.KeepAlive(data)
	return ret, nil
}

// Invoke delivers ev to messenger m without consulting its filters.
func (i *Instance) Invoke(m vk.DebugUtilsMessenger, ev Event) error {
	i.mu.Lock()
	reg, ok := i.live[m]
	i.mu.Unlock()
	if !ok {
		return ErrUnknownMessenger
	}
	_, err := reg.call(ev)
	return err
}

// Submit delivers ev to every live messenger whose filters match it, the way a driver
// routes a message. It returns the number of callbacks invoked.
func (i *Instance) Submit(ev Event) (int, error) {
	i.mu.Lock()
	targets := make([]*registration, 0, len(i.live))
	for _, reg := range i.live {
		if reg.info.MessageSeverity.Has(ev.Severity) && reg.info.MessageType.Has(ev.Types) {
			targets = append(targets, reg)
		}
	}
	i.mu.Unlock()

	delivered := 0
	for _, reg := range targets {
		ok, err := reg.call(ev)
		if err != nil {
			return delivered, err
		}
		if ok {
			delivered++
		}
	}
	return delivered, nil
}

func (r *registration) call(ev Event) (bool, error) {
	r.busy.RLock()
	defer r.busy.RUnlock()
	if r.dead {
		return false, nil
	}
	if _, err := Deliver(r.info, ev); err != nil {
		return false, err
	}
	return true, nil
}
