// Package battle orchestrates runs of the simulation core: it validates
// loadouts against the content catalog, drives the tick loop under a safety
// cap, and reduces finished states to summaries. PvE runs a pillar's wave
// program; PvP resolves two loadouts against each other as a pair of
// defense halves.
package battle

import (
	"errors"
	"fmt"

	"growfortress/simcore/content"
)

// Roster caps. A loadout past these limits is a client bug, not a balance
// question.
const (
	MaxHeroes  = 5
	MaxTurrets = 6
	MaxTier    = 5
	MaxLevel   = 100
)

// ErrNilCatalog rejects orchestration without compiled content.
var ErrNilCatalog = errors.New("battle: nil catalog")

// ConfigError reports an invalid battle request. Everything it covers fails
// before the first tick; nothing mid-battle raises it.
type ConfigError struct {
	Field  string
	ID     string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("battle: %s %q: %s", e.Field, e.ID, e.Reason)
	}
	return fmt.Sprintf("battle: %s: %s", e.Field, e.Reason)
}

func configErr(field, id, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, ID: id, Reason: fmt.Sprintf(format, args...)}
}

// HeroPick selects one hero with its progression.
type HeroPick struct {
	ID    string `json:"id" msgpack:"id"`
	Tier  int64  `json:"tier" msgpack:"tier"`
	Level int64  `json:"level" msgpack:"level"`
}

// TurretPick selects one turret emplacement.
type TurretPick struct {
	ID   string `json:"id" msgpack:"id"`
	Tier int64  `json:"tier" msgpack:"tier"`
}

// Loadout is a frozen player setup: the fortress, the fielded roster and the
// modifier inputs. It is the wire shape clients submit and the shape replay
// records embed; ids resolve against the catalog at battle start, never
// earlier.
type Loadout struct {
	Fortress   string           `json:"fortress" msgpack:"fortress"`
	Heroes     []HeroPick       `json:"heroes,omitempty" msgpack:"heroes"`
	Turrets    []TurretPick     `json:"turrets,omitempty" msgpack:"turrets"`
	Relics     []string         `json:"relics,omitempty" msgpack:"relics"`
	Masteries  []string         `json:"masteries,omitempty" msgpack:"masteries"`
	StatPoints map[string]int64 `json:"statPoints,omitempty" msgpack:"statPoints"`
}

// resolvedLoadout carries the catalog-checked form the engine consumes.
type resolvedLoadout struct {
	fortress   *content.Fortress
	heroes     []resolvedHero
	turrets    []resolvedTurret
	relics     []*content.Relic
	masteries  []*content.Mastery
	statPoints [content.BonusCategoryCount]int64
}

type resolvedHero struct {
	spec  *content.Hero
	tier  int64
	level int64
}

type resolvedTurret struct {
	spec *content.Turret
	tier int64
}

// resolveLoadout validates every id and bound in the loadout against the
// catalog. The first problem aborts with a ConfigError naming it.
func resolveLoadout(catalog *content.Catalog, l Loadout) (resolvedLoadout, error) {
	var res resolvedLoadout
	if catalog == nil {
		return res, ErrNilCatalog
	}

	fortress, ok := catalog.Fortress(l.Fortress)
	if !ok {
		return res, configErr("fortress", l.Fortress, "unknown definition")
	}
	res.fortress = fortress

	if len(l.Heroes) > MaxHeroes {
		return res, configErr("heroes", "", "%d picks exceed the %d slot cap", len(l.Heroes), MaxHeroes)
	}
	seenHeroes := make(map[string]bool, len(l.Heroes))
	for _, pick := range l.Heroes {
		spec, ok := catalog.Hero(pick.ID)
		if !ok {
			return res, configErr("hero", pick.ID, "unknown definition")
		}
		if seenHeroes[pick.ID] {
			return res, configErr("hero", pick.ID, "picked twice")
		}
		seenHeroes[pick.ID] = true
		if pick.Tier < 1 || pick.Tier > MaxTier {
			return res, configErr("hero", pick.ID, "tier %d outside [1,%d]", pick.Tier, MaxTier)
		}
		if pick.Level < 1 || pick.Level > MaxLevel {
			return res, configErr("hero", pick.ID, "level %d outside [1,%d]", pick.Level, MaxLevel)
		}
		res.heroes = append(res.heroes, resolvedHero{spec: spec, tier: pick.Tier, level: pick.Level})
	}

	if len(l.Turrets) > MaxTurrets {
		return res, configErr("turrets", "", "%d picks exceed the %d slot cap", len(l.Turrets), MaxTurrets)
	}
	for _, pick := range l.Turrets {
		spec, ok := catalog.Turret(pick.ID)
		if !ok {
			return res, configErr("turret", pick.ID, "unknown definition")
		}
		if pick.Tier < 1 || pick.Tier > MaxTier {
			return res, configErr("turret", pick.ID, "tier %d outside [1,%d]", pick.Tier, MaxTier)
		}
		res.turrets = append(res.turrets, resolvedTurret{spec: spec, tier: pick.Tier})
	}

	for _, id := range l.Relics {
		relic, ok := catalog.Relic(id)
		if !ok {
			return res, configErr("relic", id, "unknown definition")
		}
		res.relics = append(res.relics, relic)
	}
	for _, id := range l.Masteries {
		mastery, ok := catalog.Mastery(id)
		if !ok {
			return res, configErr("mastery", id, "unknown definition")
		}
		res.masteries = append(res.masteries, mastery)
	}

	for name, points := range l.StatPoints {
		category, ok := content.ParseBonusCategory(name)
		if !ok {
			return res, configErr("statPoints", name, "unknown category")
		}
		if points < 0 {
			return res, configErr("statPoints", name, "negative allocation %d", points)
		}
		res.statPoints[category] = points
	}
	return res, nil
}
