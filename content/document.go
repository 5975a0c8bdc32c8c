package content

// Document is the authored definition bundle as it appears on disk. Numeric
// stats are whole world units (hit points, units of distance), speeds are
// units per second, durations are ticks and balance fractions are integer
// percent. The structs are exported so tooling (schema generator, editors)
// can reflect over the configuration contract shared with designers.
type Document struct {
	Heroes     []HeroDocument     `json:"heroes" jsonschema:"title=Heroes,description=Playable hero roster definitions.,required"`
	Turrets    []TurretDocument   `json:"turrets" jsonschema:"title=Turrets,description=Mountable turret definitions.,required"`
	Enemies    []EnemyDocument    `json:"enemies" jsonschema:"title=Enemies,description=Enemy definitions including special behaviors.,required"`
	Fortresses []FortressDocument `json:"fortresses" jsonschema:"title=Fortresses,description=Fortress base definitions.,required"`
	Relics     []RelicDocument    `json:"relics" jsonschema:"title=Relics,description=Synergy and amplifier relic definitions."`
	Pillars    []PillarDocument   `json:"pillars" jsonschema:"title=Pillars,description=World segment definitions driving wave composition.,required"`
	Masteries  []MasteryDocument  `json:"masteries" jsonschema:"title=Masteries,description=Mastery nodes that amplify synergy categories."`
	Combos     []ComboDocument    `json:"combos" jsonschema:"title=Combos,description=Two-element combo reaction table.,required"`
	Synergies  []SynergyDocument  `json:"synergies" jsonschema:"title=Hero Synergies,description=Named distance-gated hero pair and trio bonuses."`
}

// ProjectileDocument configures the shot an attacker fires. A zero Speed is
// legal and produces a projectile that only the lifetime cap removes.
type ProjectileDocument struct {
	Speed            int64         `json:"speed" jsonschema:"title=Speed,description=Projectile speed in units per second."`
	HitRadius        int64         `json:"hitRadius" jsonschema:"title=Hit Radius,description=Collision radius in whole units before class modifiers.,required"`
	PierceCount      int64         `json:"pierceCount,omitempty" jsonschema:"title=Pierce Count,description=Additional targets beyond the first."`
	PierceFalloffPct int64         `json:"pierceFalloffPct,omitempty" jsonschema:"title=Pierce Falloff,description=Percent of damage kept per additional target."`
	Arc              bool          `json:"arc,omitempty" jsonschema:"title=Arc,description=Parabolic mortar arc to a fixed landing point instead of homing."`
	SplashRadius     int64         `json:"splashRadius,omitempty" jsonschema:"title=Splash Radius,description=Splash radius for arcing shots in whole units."`
	OnHit            OnHitDocument `json:"onHit,omitempty" jsonschema:"title=On-Hit Status,description=Timed effect applied to struck enemies."`
}

// OnHitDocument is the optional status rider a projectile applies on hit.
// Burn damage is authored as a percent of the triggering hit, dealt on a
// fixed pulse cadence while the effect lasts.
type OnHitDocument struct {
	Status       string `json:"status,omitempty" jsonschema:"title=Status,description=slow freeze burn or stun; empty for no rider."`
	MagnitudePct int64  `json:"magnitudePct,omitempty" jsonschema:"title=Magnitude,description=Slow strength as percent of speed removed."`
	Duration     int64  `json:"durationTicks,omitempty" jsonschema:"title=Duration"`
	DotPct       int64  `json:"dotPct,omitempty" jsonschema:"title=Burn Damage,description=Percent of the triggering hit dealt per burn pulse."`
	PulseTicks   int64  `json:"pulseTicks,omitempty" jsonschema:"title=Pulse Cadence,description=Ticks between burn pulses."`
}

type HeroDocument struct {
	ID             string             `json:"id" jsonschema:"title=Hero ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name           string             `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Class          string             `json:"class" jsonschema:"title=Class,description=Elemental class name.,required"`
	MaxHP          int64              `json:"maxHp" jsonschema:"title=Max HP,required"`
	Speed          int64              `json:"speed" jsonschema:"title=Move Speed,description=Units per second.,required"`
	Damage         int64              `json:"damage" jsonschema:"title=Attack Damage,required"`
	AttackInterval int64              `json:"attackIntervalTicks" jsonschema:"title=Attack Interval,description=Ticks between attacks.,required"`
	Range          int64              `json:"range" jsonschema:"title=Attack Range,required"`
	PreferredRange int64              `json:"preferredRange" jsonschema:"title=Preferred Range,description=Combat distance the hero steers to hold.,required"`
	Projectile     ProjectileDocument `json:"projectile" jsonschema:"title=Projectile,required"`
}

type TurretDocument struct {
	ID             string             `json:"id" jsonschema:"title=Turret ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name           string             `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Class          string             `json:"class" jsonschema:"title=Class,required"`
	Damage         int64              `json:"damage" jsonschema:"title=Attack Damage,required"`
	AttackInterval int64              `json:"attackIntervalTicks" jsonschema:"title=Attack Interval,required"`
	Range          int64              `json:"range" jsonschema:"title=Attack Range,required"`
	Projectile     ProjectileDocument `json:"projectile" jsonschema:"title=Projectile,required"`
}

type EnemyDocument struct {
	ID             string `json:"id" jsonschema:"title=Enemy ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name           string `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Special        string `json:"special,omitempty" jsonschema:"title=Special Behavior,description=Special kind name; empty for ordinary enemies."`
	MaxHP          int64  `json:"maxHp" jsonschema:"title=Max HP,required"`
	Speed          int64  `json:"speed" jsonschema:"title=Move Speed,description=Units per second.,required"`
	Damage         int64  `json:"damage" jsonschema:"title=Attack Damage,required"`
	AttackInterval int64  `json:"attackIntervalTicks" jsonschema:"title=Attack Interval,required"`
	Range          int64  `json:"range" jsonschema:"title=Attack Range,required"`

	// Special tuning blocks; only the block matching Special is read.
	AuraRadius       int64 `json:"auraRadius,omitempty" jsonschema:"title=Shield Aura Radius"`
	AuraReductionPct int64 `json:"auraReductionPct,omitempty" jsonschema:"title=Shield Aura Reduction,description=Percent of incoming damage removed for allies in radius."`
	StructureDmgPct  int64 `json:"structureDamagePct,omitempty" jsonschema:"title=Structure Damage,description=Percent damage multiplier against walls and the fortress."`
	StandoffRange    int64 `json:"standoffRange,omitempty" jsonschema:"title=Standoff Range,description=Distance siege units hold from the wall."`
	HealAmount       int64 `json:"healAmount,omitempty" jsonschema:"title=Heal Amount"`
	HealRadius       int64 `json:"healRadius,omitempty" jsonschema:"title=Heal Radius"`
	HealInterval     int64 `json:"healIntervalTicks,omitempty" jsonschema:"title=Heal Interval"`
	BlinkInterval    int64 `json:"blinkIntervalTicks,omitempty" jsonschema:"title=Blink Interval"`
	BlinkDistance    int64 `json:"blinkDistance,omitempty" jsonschema:"title=Blink Distance"`
	BlinkJitter      int64 `json:"blinkJitter,omitempty" jsonschema:"title=Blink Jitter,description=Maximum seeded lateral offset applied per blink."`
}

type FortressDocument struct {
	ID             string             `json:"id" jsonschema:"title=Fortress ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name           string             `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Class          string             `json:"class" jsonschema:"title=Class,required"`
	MaxHP          int64              `json:"maxHp" jsonschema:"title=Fortress HP,required"`
	WallHP         int64              `json:"wallHp" jsonschema:"title=Wall HP,description=Separate pool absorbed before fortress HP.,required"`
	Damage         int64              `json:"damage" jsonschema:"title=Auto Attack Damage,required"`
	AttackInterval int64              `json:"attackIntervalTicks" jsonschema:"title=Attack Interval,required"`
	Range          int64              `json:"range" jsonschema:"title=Attack Range,required"`
	Projectile     ProjectileDocument `json:"projectile" jsonschema:"title=Projectile,required"`
}

type RelicDocument struct {
	ID          string `json:"id" jsonschema:"title=Relic ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name        string `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Kind        string `json:"kind" jsonschema:"title=Relic Kind,description=Either synergy or amplifier.,required"`
	Class       string `json:"class,omitempty" jsonschema:"title=Matching Class,description=Roster class counted against the threshold (synergy relics)."`
	Threshold   int64  `json:"threshold,omitempty" jsonschema:"title=Threshold,description=Matching roster members required before the relic contributes."`
	Category    string `json:"category,omitempty" jsonschema:"title=Bonus Category,description=Modifier category the relic feeds (synergy relics)."`
	BonusBp     int64  `json:"bonusBp,omitempty" jsonschema:"title=Bonus,description=Contribution in basis points."`
	Stacks      bool   `json:"stacks,omitempty" jsonschema:"title=Stacks,description=Whether duplicate copies each contribute."`
	AmplifierBp int64  `json:"amplifierBp,omitempty" jsonschema:"title=Amplifier,description=Final-pass multiplier over summed categories in basis points (amplifier relics)."`
}

type PillarDocument struct {
	ID           string           `json:"id" jsonschema:"title=Pillar ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name         string           `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	ClassBonusBp map[string]int64 `json:"classBonusBp,omitempty" jsonschema:"title=Class Bonuses,description=Damage bonus in basis points keyed by class name."`
	BaseWaveSize int64            `json:"baseWaveSize" jsonschema:"title=Base Wave Size,required"`
	WaveGrowthBp int64            `json:"waveGrowthBp" jsonschema:"title=Wave Growth,description=Per-wave size growth in basis points."`
	HPGrowthBp   int64            `json:"hpGrowthBp" jsonschema:"title=HP Growth,description=Per-wave enemy HP growth in basis points."`
	WaveInterval int64            `json:"waveIntervalTicks" jsonschema:"title=Wave Interval,required"`
	WaveCount    int64            `json:"waveCount" jsonschema:"title=Wave Count,description=Waves to clear for victory; endless mode ignores it."`
	Composition  []string         `json:"composition" jsonschema:"title=Composition,description=Enemy ids cycled through while filling each wave.,required"`
}

type MasteryDocument struct {
	ID        string `json:"id" jsonschema:"title=Mastery ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name      string `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Category  string `json:"category" jsonschema:"title=Amplified Category,description=Synergy category this node amplifies.,required"`
	AmplifyBp int64  `json:"amplifyBp" jsonschema:"title=Amplification,description=Multiplier over the category's synergy contributions in basis points.,required"`
}

type ComboDocument struct {
	ID        string `json:"id" jsonschema:"title=Combo ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name      string `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	First     string `json:"first" jsonschema:"title=First Element,description=One class of the unordered pair.,required"`
	Second    string `json:"second" jsonschema:"title=Second Element,description=The other class; must differ from first.,required"`
	Effect    string `json:"effect" jsonschema:"title=Effect,description=bonus-damage stun or armor-break.,required"`
	BonusPct  int64  `json:"bonusPct,omitempty" jsonschema:"title=Bonus Percent,description=Percent of the contributing hit average dealt as bonus damage."`
	StunTicks int64  `json:"stunTicks,omitempty" jsonschema:"title=Stun Duration"`
}

type SynergyDocument struct {
	ID       string   `json:"id" jsonschema:"title=Synergy ID,pattern=^[a-z0-9-]+$,minLength=1,required"`
	Name     string   `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Heroes   []string `json:"heroes" jsonschema:"title=Members,description=Two or three hero ids that must all be alive and in radius.,required"`
	Radius   int64    `json:"radius" jsonschema:"title=Radius,description=Maximum pairwise distance in whole units.,required"`
	Category string   `json:"category" jsonschema:"title=Bonus Category,required"`
	BonusBp  int64    `json:"bonusBp" jsonschema:"title=Bonus,description=Contribution in basis points while the formation holds.,required"`
}
