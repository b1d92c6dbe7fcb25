package zinc

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ZoneResolver maps a Zinc time zone name to a location.
type ZoneResolver interface {
	Resolve(name string) (*time.Location, error)
}

// ZoneFunc adapts a function to ZoneResolver.
type ZoneFunc func(name string) (*time.Location, error)

// Resolve calls f(name).
func (f ZoneFunc) Resolve(name string) (*time.Location, error) {
	return f(name)
}

// Haystack writes zones by city ("New_York"), the tz database by region
// ("America/New_York"). Regions are searched in this order.
var zoneRegions = [...]string{
	"America", "Europe", "Asia", "Africa", "Australia", "Pacific",
	"Atlantic", "Indian", "Antarctica", "Arctic", "Etc",
}

// maxCachedZones bounds the shared cache; names past it are looked up
// every time.
const maxCachedZones = 1024

type zoneResult struct {
	loc *time.Location
	err error
}

// haystackZones remembers every answer, failures included, so the tz
// database is read at most once per name.
type haystackZones struct {
	mu    sync.RWMutex
	cache map[string]zoneResult
}

var defaultZones = &haystackZones{cache: make(map[string]zoneResult)}

// DefaultZones resolves UTC, GMT±N, full tz database names and Haystack
// city names against the system (or embedded) tz database. The returned
// resolver is shared and safe for concurrent use.
func DefaultZones() ZoneResolver {
	return defaultZones
}

func (z *haystackZones) Resolve(name string) (*time.Location, error) {
	z.mu.RLock()
	r, ok := z.cache[name]
	z.mu.RUnlock()
	if ok {
		return r.loc, r.err
	}

	loc, err := lookupZone(name)
	z.mu.Lock()
	if len(z.cache) < maxCachedZones {
		z.cache[name] = zoneResult{loc: loc, err: err}
	}
	z.mu.Unlock()
	return loc, err
}

func lookupZone(name string) (*time.Location, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("zinc: empty time zone name")
	case name == "UTC" || name == "GMT" || name == "Rel":
		return time.UTC, nil
	case strings.HasPrefix(name, "GMT+") || strings.HasPrefix(name, "GMT-"):
		return time.LoadLocation("Etc/" + name)
	case strings.Contains(name, "/"):
		return time.LoadLocation(name)
	}

	for _, region := range zoneRegions {
		if loc, err := time.LoadLocation(region + "/" + name); err == nil {
			return loc, nil
		}
	}
	return nil, fmt.Errorf("zinc: unknown time zone %q", name)
}

// zoneMemo asks next once per name for the life of one parse. Not safe
// for concurrent use.
type zoneMemo struct {
	next ZoneResolver
	seen map[string]zoneResult
}

func newZoneMemo(next ZoneResolver) ZoneResolver {
	if next == nil {
		return nil
	}
	return &zoneMemo{next: next, seen: make(map[string]zoneResult)}
}

func (m *zoneMemo) Resolve(name string) (*time.Location, error) {
	if r, ok := m.seen[name]; ok {
		return r.loc, r.err
	}
	loc, err := m.next.Resolve(name)
	m.seen[name] = zoneResult{loc: loc, err: err}
	return loc, err
}

// ZoneAliases resolves names through a fixed alias table before handing
// them to Next (DefaultZones when nil).
type ZoneAliases struct {
	Aliases map[string]string
	Next    ZoneResolver
}

// Resolve implements ZoneResolver.
func (z ZoneAliases) Resolve(name string) (*time.Location, error) {
	next := z.Next
	if next == nil {
		next = DefaultZones()
	}
	if target, ok := z.Aliases[name]; ok {
		if loc, err := time.LoadLocation(target); err == nil {
			return loc, nil
		}
	}
	return next.Resolve(name)
}
