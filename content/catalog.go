package content

import (
	"fmt"
	"sort"

	"growfortress/simcore/fixed"
)

// DefinitionError reports an invalid or missing entry discovered while
// compiling a document. Catalog construction stops on the first one; a
// battle never starts against a half-valid table.
type DefinitionError struct {
	Table  string
	ID     string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("content: %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("content: %s %q: %s", e.Table, e.ID, e.Reason)
}

func defErr(table, id, format string, args ...any) error {
	return &DefinitionError{Table: table, ID: id, Reason: fmt.Sprintf(format, args...)}
}

// ProjectileSpec is the compiled projectile block of a hero, turret or
// fortress definition. Speed is fixed-point units per tick.
type ProjectileSpec struct {
	Speed           fixed.Fx
	HitRadius       fixed.Fx
	PierceCount     int
	PierceFalloffBp int64
	Arc             bool
	SplashRadius    fixed.Fx
	OnHit           OnHitSpec
}

// OnHitSpec is the compiled status rider of a projectile. Status is
// StatusNone when the shot carries no rider.
type OnHitSpec struct {
	Status      StatusKind
	MagnitudeBp int64
	Duration    int64
	DotBp       int64
	Pulse       int64
}

// Hero is the compiled hero definition.
type Hero struct {
	ID             string
	Name           string
	Class          Class
	MaxHP          fixed.Fx
	Speed          fixed.Fx
	Damage         fixed.Fx
	AttackInterval int64
	Range          fixed.Fx
	PreferredRange fixed.Fx
	Projectile     ProjectileSpec
}

// Turret is the compiled turret definition.
type Turret struct {
	ID             string
	Name           string
	Class          Class
	Damage         fixed.Fx
	AttackInterval int64
	Range          fixed.Fx
	Projectile     ProjectileSpec
}

// AuraSpec tunes a shield-aura caster.
type AuraSpec struct {
	Radius      fixed.Fx
	ReductionBp int64
}

// HealSpec tunes a healer's pulse.
type HealSpec struct {
	Amount   fixed.Fx
	Radius   fixed.Fx
	Interval int64
}

// BlinkSpec tunes a teleporter.
type BlinkSpec struct {
	Interval int64
	Distance fixed.Fx
	Jitter   fixed.Fx
}

// Enemy is the compiled enemy definition.
type Enemy struct {
	ID             string
	Name           string
	Special        SpecialKind
	MaxHP          fixed.Fx
	Speed          fixed.Fx
	Damage         fixed.Fx
	AttackInterval int64
	Range          fixed.Fx
	StructureDmgBp int64
	StandoffRange  fixed.Fx
	Aura           AuraSpec
	Heal           HealSpec
	Blink          BlinkSpec
}

// Fortress is the compiled fortress definition.
type Fortress struct {
	ID             string
	Name           string
	Class          Class
	MaxHP          fixed.Fx
	WallHP         fixed.Fx
	Damage         fixed.Fx
	AttackInterval int64
	Range          fixed.Fx
	Projectile     ProjectileSpec
}

// Relic is the compiled relic definition.
type Relic struct {
	ID          string
	Name        string
	Kind        RelicKind
	Class       Class
	Threshold   int64
	Category    BonusCategory
	BonusBp     int64
	Stacks      bool
	AmplifierBp int64
}

// Pillar is the compiled world-segment definition.
type Pillar struct {
	ID           string
	Name         string
	ClassBonusBp [ClassCount]int64
	BaseWaveSize int64
	WaveGrowthBp int64
	HPGrowthBp   int64
	WaveInterval int64
	WaveCount    int64
	Composition  []string
}

// Mastery is the compiled mastery node.
type Mastery struct {
	ID        string
	Name      string
	Category  BonusCategory
	AmplifyBp int64
}

// Combo is one row of the compiled reaction table. The pair is unordered;
// Pair always stores the lower class tag first.
type Combo struct {
	ID        string
	Name      string
	Pair      [2]Class
	Effect    ComboEffect
	BonusPct  int64
	StunTicks int64
}

// Synergy is a compiled named pair/trio hero formation.
type Synergy struct {
	ID       string
	Name     string
	Heroes   []string
	Radius   fixed.Fx
	Category BonusCategory
	BonusBp  int64
}

// Catalog is the validated, immutable definition set a battle runs against.
// Lookups go through the maps; listings use the ordered slices so nothing
// downstream ever iterates a map.
type Catalog struct {
	heroes     map[string]*Hero
	turrets    map[string]*Turret
	enemies    map[string]*Enemy
	fortresses map[string]*Fortress
	relics     map[string]*Relic
	pillars    map[string]*Pillar
	masteries  map[string]*Mastery
	synergies  map[string]*Synergy

	heroOrder    []string
	turretOrder  []string
	enemyOrder   []string
	pillarOrder  []string
	combosByPair map[[2]Class]*Combo
	comboOrder   []*Combo
}

// Compile validates a document and builds the catalog. The first invalid
// entry aborts compilation with a DefinitionError.
func Compile(doc Document) (*Catalog, error) {
	c := &Catalog{
		heroes:       make(map[string]*Hero, len(doc.Heroes)),
		turrets:      make(map[string]*Turret, len(doc.Turrets)),
		enemies:      make(map[string]*Enemy, len(doc.Enemies)),
		fortresses:   make(map[string]*Fortress, len(doc.Fortresses)),
		relics:       make(map[string]*Relic, len(doc.Relics)),
		pillars:      make(map[string]*Pillar, len(doc.Pillars)),
		masteries:    make(map[string]*Mastery, len(doc.Masteries)),
		synergies:    make(map[string]*Synergy, len(doc.Synergies)),
		combosByPair: make(map[[2]Class]*Combo, len(doc.Combos)),
	}

	for _, d := range doc.Heroes {
		if err := c.compileHero(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Turrets {
		if err := c.compileTurret(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Enemies {
		if err := c.compileEnemy(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Fortresses {
		if err := c.compileFortress(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Relics {
		if err := c.compileRelic(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Pillars {
		if err := c.compilePillar(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Masteries {
		if err := c.compileMastery(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Combos {
		if err := c.compileCombo(d); err != nil {
			return nil, err
		}
	}
	for _, d := range doc.Synergies {
		if err := c.compileSynergy(d); err != nil {
			return nil, err
		}
	}

	if len(c.heroes) == 0 {
		return nil, defErr("heroes", "", "table is empty")
	}
	if len(c.enemies) == 0 {
		return nil, defErr("enemies", "", "table is empty")
	}
	if len(c.fortresses) == 0 {
		return nil, defErr("fortresses", "", "table is empty")
	}
	if len(c.pillars) == 0 {
		return nil, defErr("pillars", "", "table is empty")
	}
	return c, nil
}

func compileProjectile(table, id string, d ProjectileDocument) (ProjectileSpec, error) {
	if d.HitRadius <= 0 {
		return ProjectileSpec{}, defErr(table, id, "projectile hitRadius must be positive")
	}
	if d.Speed < 0 {
		return ProjectileSpec{}, defErr(table, id, "projectile speed must not be negative")
	}
	if d.PierceCount < 0 {
		return ProjectileSpec{}, defErr(table, id, "pierceCount must not be negative")
	}
	if d.PierceCount > 0 && (d.PierceFalloffPct <= 0 || d.PierceFalloffPct > 100) {
		return ProjectileSpec{}, defErr(table, id, "pierceFalloffPct must be in (0,100] when pierceCount is set")
	}
	if d.Arc && d.SplashRadius <= 0 {
		return ProjectileSpec{}, defErr(table, id, "arcing projectiles need a positive splashRadius")
	}
	onHit, err := compileOnHit(table, id, d.OnHit)
	if err != nil {
		return ProjectileSpec{}, err
	}
	return ProjectileSpec{
		Speed:           perTickSpeed(d.Speed),
		HitRadius:       fixed.FromInt(d.HitRadius),
		PierceCount:     int(d.PierceCount),
		PierceFalloffBp: d.PierceFalloffPct * 100,
		Arc:             d.Arc,
		SplashRadius:    fixed.FromInt(d.SplashRadius),
		OnHit:           onHit,
	}, nil
}

func compileOnHit(table, id string, d OnHitDocument) (OnHitSpec, error) {
	status, ok := ParseStatusKind(d.Status)
	if !ok {
		return OnHitSpec{}, defErr(table, id, "unknown onHit status %q", d.Status)
	}
	spec := OnHitSpec{Status: status}
	switch status {
	case StatusNone:
		return spec, nil
	case StatusArmorBreak:
		return OnHitSpec{}, defErr(table, id, "armor-break is combo-only and cannot ride a projectile")
	case StatusSlow:
		if d.MagnitudePct <= 0 || d.MagnitudePct >= 100 {
			return OnHitSpec{}, defErr(table, id, "slow riders need magnitudePct in (0,100)")
		}
		spec.MagnitudeBp = d.MagnitudePct * 100
	case StatusBurn:
		if d.DotPct <= 0 || d.PulseTicks <= 0 {
			return OnHitSpec{}, defErr(table, id, "burn riders need dotPct and pulseTicks")
		}
		spec.DotBp = d.DotPct * 100
		spec.Pulse = d.PulseTicks
	}
	if d.Duration <= 0 {
		return OnHitSpec{}, defErr(table, id, "onHit riders need durationTicks > 0")
	}
	spec.Duration = d.Duration
	return spec, nil
}

func perTickSpeed(unitsPerSecond int64) fixed.Fx {
	return fixed.Div(fixed.FromInt(unitsPerSecond), fixed.FromInt(TicksPerSecond))
}

func (c *Catalog) compileHero(d HeroDocument) error {
	if d.ID == "" {
		return defErr("heroes", "", "missing id")
	}
	if _, dup := c.heroes[d.ID]; dup {
		return defErr("heroes", d.ID, "duplicate id")
	}
	class, ok := ParseClass(d.Class)
	if !ok {
		return defErr("heroes", d.ID, "unknown class %q", d.Class)
	}
	if d.MaxHP <= 0 || d.Damage < 0 || d.Speed < 0 {
		return defErr("heroes", d.ID, "stats must be positive")
	}
	if d.AttackInterval <= 0 {
		return defErr("heroes", d.ID, "attackIntervalTicks must be positive")
	}
	if d.Range <= 0 || d.PreferredRange <= 0 || d.PreferredRange > d.Range {
		return defErr("heroes", d.ID, "preferredRange must be in (0, range]")
	}
	proj, err := compileProjectile("heroes", d.ID, d.Projectile)
	if err != nil {
		return err
	}
	c.heroes[d.ID] = &Hero{
		ID:             d.ID,
		Name:           d.Name,
		Class:          class,
		MaxHP:          fixed.FromInt(d.MaxHP),
		Speed:          perTickSpeed(d.Speed),
		Damage:         fixed.FromInt(d.Damage),
		AttackInterval: d.AttackInterval,
		Range:          fixed.FromInt(d.Range),
		PreferredRange: fixed.FromInt(d.PreferredRange),
		Projectile:     proj,
	}
	c.heroOrder = append(c.heroOrder, d.ID)
	return nil
}

func (c *Catalog) compileTurret(d TurretDocument) error {
	if d.ID == "" {
		return defErr("turrets", "", "missing id")
	}
	if _, dup := c.turrets[d.ID]; dup {
		return defErr("turrets", d.ID, "duplicate id")
	}
	class, ok := ParseClass(d.Class)
	if !ok {
		return defErr("turrets", d.ID, "unknown class %q", d.Class)
	}
	if d.Damage < 0 || d.AttackInterval <= 0 || d.Range <= 0 {
		return defErr("turrets", d.ID, "stats must be positive")
	}
	proj, err := compileProjectile("turrets", d.ID, d.Projectile)
	if err != nil {
		return err
	}
	c.turrets[d.ID] = &Turret{
		ID:             d.ID,
		Name:           d.Name,
		Class:          class,
		Damage:         fixed.FromInt(d.Damage),
		AttackInterval: d.AttackInterval,
		Range:          fixed.FromInt(d.Range),
		Projectile:     proj,
	}
	c.turretOrder = append(c.turretOrder, d.ID)
	return nil
}

func (c *Catalog) compileEnemy(d EnemyDocument) error {
	if d.ID == "" {
		return defErr("enemies", "", "missing id")
	}
	if _, dup := c.enemies[d.ID]; dup {
		return defErr("enemies", d.ID, "duplicate id")
	}
	special, ok := ParseSpecialKind(d.Special)
	if !ok {
		return defErr("enemies", d.ID, "unknown special %q", d.Special)
	}
	if d.MaxHP <= 0 || d.Damage < 0 || d.Speed < 0 {
		return defErr("enemies", d.ID, "stats must be positive")
	}
	if d.AttackInterval <= 0 || d.Range <= 0 {
		return defErr("enemies", d.ID, "attack interval and range must be positive")
	}
	e := &Enemy{
		ID:             d.ID,
		Name:           d.Name,
		Special:        special,
		MaxHP:          fixed.FromInt(d.MaxHP),
		Speed:          perTickSpeed(d.Speed),
		Damage:         fixed.FromInt(d.Damage),
		AttackInterval: d.AttackInterval,
		Range:          fixed.FromInt(d.Range),
		StructureDmgBp: 10000,
	}
	switch special {
	case SpecialShieldAura:
		if d.AuraRadius <= 0 || d.AuraReductionPct <= 0 || d.AuraReductionPct >= 100 {
			return defErr("enemies", d.ID, "shield-aura needs auraRadius > 0 and auraReductionPct in (0,100)")
		}
		e.Aura = AuraSpec{Radius: fixed.FromInt(d.AuraRadius), ReductionBp: d.AuraReductionPct * 100}
	case SpecialSapper, SpecialSiege:
		if d.StructureDmgPct <= 0 {
			return defErr("enemies", d.ID, "%s needs structureDamagePct > 0", special)
		}
		e.StructureDmgBp = d.StructureDmgPct * 100
		if special == SpecialSiege {
			if d.StandoffRange < d.Range {
				return defErr("enemies", d.ID, "siege standoffRange must be at least attack range")
			}
			e.StandoffRange = fixed.FromInt(d.StandoffRange)
		}
	case SpecialHealer:
		if d.HealAmount <= 0 || d.HealRadius <= 0 || d.HealInterval <= 0 {
			return defErr("enemies", d.ID, "healer needs healAmount, healRadius and healIntervalTicks")
		}
		e.Heal = HealSpec{
			Amount:   fixed.FromInt(d.HealAmount),
			Radius:   fixed.FromInt(d.HealRadius),
			Interval: d.HealInterval,
		}
	case SpecialTeleporter:
		if d.BlinkInterval <= 0 || d.BlinkDistance <= 0 {
			return defErr("enemies", d.ID, "teleporter needs blinkIntervalTicks and blinkDistance")
		}
		e.Blink = BlinkSpec{
			Interval: d.BlinkInterval,
			Distance: fixed.FromInt(d.BlinkDistance),
			Jitter:   fixed.FromInt(d.BlinkJitter),
		}
	}
	c.enemies[d.ID] = e
	c.enemyOrder = append(c.enemyOrder, d.ID)
	return nil
}

func (c *Catalog) compileFortress(d FortressDocument) error {
	if d.ID == "" {
		return defErr("fortresses", "", "missing id")
	}
	if _, dup := c.fortresses[d.ID]; dup {
		return defErr("fortresses", d.ID, "duplicate id")
	}
	class, ok := ParseClass(d.Class)
	if !ok {
		return defErr("fortresses", d.ID, "unknown class %q", d.Class)
	}
	if d.MaxHP <= 0 || d.WallHP < 0 || d.Damage < 0 {
		return defErr("fortresses", d.ID, "stats must be positive")
	}
	if d.AttackInterval <= 0 || d.Range <= 0 {
		return defErr("fortresses", d.ID, "attack interval and range must be positive")
	}
	proj, err := compileProjectile("fortresses", d.ID, d.Projectile)
	if err != nil {
		return err
	}
	c.fortresses[d.ID] = &Fortress{
		ID:             d.ID,
		Name:           d.Name,
		Class:          class,
		MaxHP:          fixed.FromInt(d.MaxHP),
		WallHP:         fixed.FromInt(d.WallHP),
		Damage:         fixed.FromInt(d.Damage),
		AttackInterval: d.AttackInterval,
		Range:          fixed.FromInt(d.Range),
		Projectile:     proj,
	}
	return nil
}

func (c *Catalog) compileRelic(d RelicDocument) error {
	if d.ID == "" {
		return defErr("relics", "", "missing id")
	}
	if _, dup := c.relics[d.ID]; dup {
		return defErr("relics", d.ID, "duplicate id")
	}
	kind, ok := ParseRelicKind(d.Kind)
	if !ok {
		return defErr("relics", d.ID, "unknown kind %q", d.Kind)
	}
	r := &Relic{ID: d.ID, Name: d.Name, Kind: kind, Stacks: d.Stacks}
	switch kind {
	case RelicSynergy:
		class, ok := ParseClass(d.Class)
		if !ok {
			return defErr("relics", d.ID, "unknown class %q", d.Class)
		}
		category, ok := ParseBonusCategory(d.Category)
		if !ok {
			return defErr("relics", d.ID, "unknown category %q", d.Category)
		}
		if d.Threshold <= 0 || d.BonusBp <= 0 {
			return defErr("relics", d.ID, "synergy relics need threshold and bonusBp > 0")
		}
		r.Class = class
		r.Category = category
		r.Threshold = d.Threshold
		r.BonusBp = d.BonusBp
	case RelicAmplifier:
		if d.AmplifierBp <= 0 {
			return defErr("relics", d.ID, "amplifier relics need amplifierBp > 0")
		}
		r.AmplifierBp = d.AmplifierBp
	}
	c.relics[d.ID] = r
	return nil
}

func (c *Catalog) compilePillar(d PillarDocument) error {
	if d.ID == "" {
		return defErr("pillars", "", "missing id")
	}
	if _, dup := c.pillars[d.ID]; dup {
		return defErr("pillars", d.ID, "duplicate id")
	}
	if d.BaseWaveSize <= 0 || d.WaveInterval <= 0 {
		return defErr("pillars", d.ID, "baseWaveSize and waveIntervalTicks must be positive")
	}
	if len(d.Composition) == 0 {
		return defErr("pillars", d.ID, "composition must name at least one enemy")
	}
	p := &Pillar{
		ID:           d.ID,
		Name:         d.Name,
		BaseWaveSize: d.BaseWaveSize,
		WaveGrowthBp: d.WaveGrowthBp,
		HPGrowthBp:   d.HPGrowthBp,
		WaveInterval: d.WaveInterval,
		WaveCount:    d.WaveCount,
		Composition:  append([]string(nil), d.Composition...),
	}
	for _, enemyID := range d.Composition {
		if _, ok := c.enemies[enemyID]; !ok {
			return defErr("pillars", d.ID, "composition references unknown enemy %q", enemyID)
		}
	}
	// Class keys come from a JSON map; resolve them in sorted order so a
	// bad document always reports the same first failure.
	keys := make([]string, 0, len(d.ClassBonusBp))
	for name := range d.ClassBonusBp {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		class, ok := ParseClass(name)
		if !ok {
			return defErr("pillars", d.ID, "classBonusBp references unknown class %q", name)
		}
		p.ClassBonusBp[class] = d.ClassBonusBp[name]
	}
	c.pillars[d.ID] = p
	c.pillarOrder = append(c.pillarOrder, d.ID)
	return nil
}

func (c *Catalog) compileMastery(d MasteryDocument) error {
	if d.ID == "" {
		return defErr("masteries", "", "missing id")
	}
	if _, dup := c.masteries[d.ID]; dup {
		return defErr("masteries", d.ID, "duplicate id")
	}
	category, ok := ParseBonusCategory(d.Category)
	if !ok {
		return defErr("masteries", d.ID, "unknown category %q", d.Category)
	}
	if d.AmplifyBp <= 0 {
		return defErr("masteries", d.ID, "amplifyBp must be positive")
	}
	c.masteries[d.ID] = &Mastery{ID: d.ID, Name: d.Name, Category: category, AmplifyBp: d.AmplifyBp}
	return nil
}

func (c *Catalog) compileCombo(d ComboDocument) error {
	if d.ID == "" {
		return defErr("combos", "", "missing id")
	}
	first, ok := ParseClass(d.First)
	if !ok {
		return defErr("combos", d.ID, "unknown class %q", d.First)
	}
	second, ok := ParseClass(d.Second)
	if !ok {
		return defErr("combos", d.ID, "unknown class %q", d.Second)
	}
	if first == second {
		return defErr("combos", d.ID, "pair classes must differ")
	}
	effect, ok := ParseComboEffect(d.Effect)
	if !ok {
		return defErr("combos", d.ID, "unknown effect %q", d.Effect)
	}
	switch effect {
	case ComboBonusDamage:
		if d.BonusPct <= 0 {
			return defErr("combos", d.ID, "bonus-damage combos need bonusPct > 0")
		}
	case ComboStun:
		if d.StunTicks <= 0 {
			return defErr("combos", d.ID, "stun combos need stunTicks > 0")
		}
	}
	pair := normalizePair(first, second)
	if existing, dup := c.combosByPair[pair]; dup {
		return defErr("combos", d.ID, "pair already claimed by %q", existing.ID)
	}
	combo := &Combo{
		ID:        d.ID,
		Name:      d.Name,
		Pair:      pair,
		Effect:    effect,
		BonusPct:  d.BonusPct,
		StunTicks: d.StunTicks,
	}
	c.combosByPair[pair] = combo
	c.comboOrder = append(c.comboOrder, combo)
	return nil
}

func (c *Catalog) compileSynergy(d SynergyDocument) error {
	if d.ID == "" {
		return defErr("synergies", "", "missing id")
	}
	if _, dup := c.synergies[d.ID]; dup {
		return defErr("synergies", d.ID, "duplicate id")
	}
	if len(d.Heroes) < 2 || len(d.Heroes) > 3 {
		return defErr("synergies", d.ID, "formations take two or three heroes, got %d", len(d.Heroes))
	}
	seen := make(map[string]bool, len(d.Heroes))
	for _, heroID := range d.Heroes {
		if _, ok := c.heroes[heroID]; !ok {
			return defErr("synergies", d.ID, "references unknown hero %q", heroID)
		}
		if seen[heroID] {
			return defErr("synergies", d.ID, "hero %q listed twice", heroID)
		}
		seen[heroID] = true
	}
	category, ok := ParseBonusCategory(d.Category)
	if !ok {
		return defErr("synergies", d.ID, "unknown category %q", d.Category)
	}
	if d.Radius <= 0 || d.BonusBp <= 0 {
		return defErr("synergies", d.ID, "radius and bonusBp must be positive")
	}
	c.synergies[d.ID] = &Synergy{
		ID:       d.ID,
		Name:     d.Name,
		Heroes:   append([]string(nil), d.Heroes...),
		Radius:   fixed.FromInt(d.Radius),
		Category: category,
		BonusBp:  d.BonusBp,
	}
	return nil
}

func normalizePair(a, b Class) [2]Class {
	if b < a {
		a, b = b, a
	}
	return [2]Class{a, b}
}

// Hero resolves a hero definition by id.
func (c *Catalog) Hero(id string) (*Hero, bool) {
	h, ok := c.heroes[id]
	return h, ok
}

// Turret resolves a turret definition by id.
func (c *Catalog) Turret(id string) (*Turret, bool) {
	t, ok := c.turrets[id]
	return t, ok
}

// Enemy resolves an enemy definition by id.
func (c *Catalog) Enemy(id string) (*Enemy, bool) {
	e, ok := c.enemies[id]
	return e, ok
}

// Fortress resolves a fortress definition by id.
func (c *Catalog) Fortress(id string) (*Fortress, bool) {
	f, ok := c.fortresses[id]
	return f, ok
}

// Relic resolves a relic definition by id.
func (c *Catalog) Relic(id string) (*Relic, bool) {
	r, ok := c.relics[id]
	return r, ok
}

// Pillar resolves a pillar definition by id.
func (c *Catalog) Pillar(id string) (*Pillar, bool) {
	p, ok := c.pillars[id]
	return p, ok
}

// Mastery resolves a mastery node by id.
func (c *Catalog) Mastery(id string) (*Mastery, bool) {
	m, ok := c.masteries[id]
	return m, ok
}

// Synergy resolves a named hero formation by id.
func (c *Catalog) Synergy(id string) (*Synergy, bool) {
	s, ok := c.synergies[id]
	return s, ok
}

// ComboFor returns the combo matching an unordered class pair, if any.
// Same-class pairs never match.
func (c *Catalog) ComboFor(a, b Class) (*Combo, bool) {
	if a == b {
		return nil, false
	}
	combo, ok := c.combosByPair[normalizePair(a, b)]
	return combo, ok
}

// Combos lists the reaction table in authored order.
func (c *Catalog) Combos() []*Combo {
	return append([]*Combo(nil), c.comboOrder...)
}

// Synergies lists every named formation in a deterministic order.
func (c *Catalog) Synergies() []*Synergy {
	ids := make([]string, 0, len(c.synergies))
	for id := range c.synergies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Synergy, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.synergies[id])
	}
	return out
}

// HeroIDs lists hero ids in authored order.
func (c *Catalog) HeroIDs() []string {
	return append([]string(nil), c.heroOrder...)
}

// TurretIDs lists turret ids in authored order.
func (c *Catalog) TurretIDs() []string {
	return append([]string(nil), c.turretOrder...)
}

// EnemyIDs lists enemy ids in authored order.
func (c *Catalog) EnemyIDs() []string {
	return append([]string(nil), c.enemyOrder...)
}

// PillarIDs lists pillar ids in authored order.
func (c *Catalog) PillarIDs() []string {
	return append([]string(nil), c.pillarOrder...)
}
