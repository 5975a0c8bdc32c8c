package content

// DefaultDocument returns the stock definition tables shipped with the
// engine. Deployments can load their own document instead; tests and the
// verification service run against this one.
func DefaultDocument() Document {
	return Document{
		Heroes: []HeroDocument{
			{
				ID: "pyromancer", Name: "Pyromancer", Class: "fire",
				MaxHP: 220, Speed: 6, Damage: 20, AttackInterval: 24,
				Range: 30, PreferredRange: 24,
				Projectile: ProjectileDocument{
					Speed: 40, HitRadius: 1,
					OnHit: OnHitDocument{Status: "burn", DotPct: 20, PulseTicks: 15, Duration: 90},
				},
			},
			{
				ID: "frost-archer", Name: "Frost Archer", Class: "ice",
				MaxHP: 180, Speed: 7, Damage: 20, AttackInterval: 20,
				Range: 36, PreferredRange: 30,
				Projectile: ProjectileDocument{
					Speed: 50, HitRadius: 1,
					OnHit: OnHitDocument{Status: "slow", MagnitudePct: 25, Duration: 45},
				},
			},
			{
				ID: "storm-caller", Name: "Storm Caller", Class: "lightning",
				MaxHP: 170, Speed: 6, Damage: 26, AttackInterval: 30,
				Range: 34, PreferredRange: 28,
				Projectile: ProjectileDocument{Speed: 46, HitRadius: 1},
			},
			{
				ID: "tide-priest", Name: "Tide Priest", Class: "water",
				MaxHP: 200, Speed: 6, Damage: 16, AttackInterval: 26,
				Range: 32, PreferredRange: 26,
				Projectile: ProjectileDocument{Speed: 44, HitRadius: 1},
			},
			{
				ID: "lancer", Name: "Lancer", Class: "physical",
				MaxHP: 260, Speed: 8, Damage: 24, AttackInterval: 22,
				Range: 12, PreferredRange: 8,
				Projectile: ProjectileDocument{Speed: 60, HitRadius: 1, PierceCount: 1, PierceFalloffPct: 75},
			},
			{
				ID: "ember-knight", Name: "Ember Knight", Class: "fire",
				MaxHP: 300, Speed: 7, Damage: 18, AttackInterval: 18,
				Range: 10, PreferredRange: 6,
				Projectile: ProjectileDocument{Speed: 55, HitRadius: 1},
			},
		},
		Turrets: []TurretDocument{
			{
				ID: "flame-spitter", Name: "Flame Spitter", Class: "fire",
				Damage: 12, AttackInterval: 12, Range: 40,
				Projectile: ProjectileDocument{
					Speed: 55, HitRadius: 1,
					OnHit: OnHitDocument{Status: "burn", DotPct: 25, PulseTicks: 15, Duration: 90},
				},
			},
			{
				ID: "frost-coil", Name: "Frost Coil", Class: "ice",
				Damage: 10, AttackInterval: 14, Range: 38,
				Projectile: ProjectileDocument{
					Speed: 50, HitRadius: 1,
					OnHit: OnHitDocument{Status: "freeze", Duration: 20},
				},
			},
			{
				ID: "tesla-spire", Name: "Tesla Spire", Class: "lightning",
				Damage: 22, AttackInterval: 26, Range: 42,
				Projectile: ProjectileDocument{Speed: 70, HitRadius: 1},
			},
			{
				ID: "flood-cannon", Name: "Flood Cannon", Class: "water",
				Damage: 14, AttackInterval: 20, Range: 40,
				Projectile: ProjectileDocument{Speed: 48, HitRadius: 1},
			},
			{
				ID: "ballista", Name: "Ballista", Class: "physical",
				Damage: 30, AttackInterval: 34, Range: 52,
				Projectile: ProjectileDocument{Speed: 80, HitRadius: 1, PierceCount: 2, PierceFalloffPct: 70},
			},
			{
				ID: "mortar", Name: "Mortar", Class: "physical",
				Damage: 26, AttackInterval: 40, Range: 60,
				Projectile: ProjectileDocument{Speed: 24, HitRadius: 1, Arc: true, SplashRadius: 6},
			},
		},
		Enemies: []EnemyDocument{
			{
				ID: "husk", Name: "Husk",
				MaxHP: 60, Speed: 5, Damage: 6, AttackInterval: 24, Range: 3,
			},
			{
				ID: "brute", Name: "Brute",
				MaxHP: 220, Speed: 3, Damage: 14, AttackInterval: 30, Range: 3,
			},
			{
				ID: "warden", Name: "Gravewarden", Special: "shield-aura",
				MaxHP: 140, Speed: 4, Damage: 8, AttackInterval: 28, Range: 3,
				AuraRadius: 12, AuraReductionPct: 25,
			},
			{
				ID: "sapper", Name: "Sapper", Special: "sapper",
				MaxHP: 90, Speed: 6, Damage: 10, AttackInterval: 20, Range: 3,
				StructureDmgPct: 300,
			},
			{
				ID: "catapult", Name: "Bone Catapult", Special: "siege",
				MaxHP: 160, Speed: 2, Damage: 18, AttackInterval: 45, Range: 55,
				StructureDmgPct: 200, StandoffRange: 55,
			},
			{
				ID: "mender", Name: "Gravemender", Special: "healer",
				MaxHP: 110, Speed: 4, Damage: 4, AttackInterval: 30, Range: 3,
				HealAmount: 12, HealRadius: 14, HealInterval: 60,
			},
			{
				ID: "blinker", Name: "Rift Blinker", Special: "teleporter",
				MaxHP: 80, Speed: 5, Damage: 8, AttackInterval: 22, Range: 3,
				BlinkInterval: 90, BlinkDistance: 16, BlinkJitter: 4,
			},
		},
		Fortresses: []FortressDocument{
			{
				ID: "bastion", Name: "Bastion", Class: "physical",
				MaxHP: 1000, WallHP: 400, Damage: 18, AttackInterval: 20, Range: 48,
				Projectile: ProjectileDocument{Speed: 60, HitRadius: 1},
			},
			{
				ID: "ember-keep", Name: "Ember Keep", Class: "fire",
				MaxHP: 900, WallHP: 350, Damage: 20, AttackInterval: 22, Range: 46,
				Projectile: ProjectileDocument{Speed: 58, HitRadius: 1},
			},
		},
		Relics: []RelicDocument{
			{
				ID: "war-banner", Name: "War Banner", Kind: "synergy",
				Class: "fire", Threshold: 2, Category: "damage", BonusBp: 1500,
			},
			{
				ID: "frost-sigil", Name: "Frost Sigil", Kind: "synergy",
				Class: "ice", Threshold: 2, Category: "attack-speed", BonusBp: 1200,
			},
			{
				ID: "colossus-idol", Name: "Colossus Idol", Kind: "synergy",
				Class: "physical", Threshold: 3, Category: "max-hp", BonusBp: 1000, Stacks: true,
			},
			{
				ID: "prism-core", Name: "Prism Core", Kind: "amplifier",
				AmplifierBp: 12500,
			},
		},
		Pillars: []PillarDocument{
			{
				ID: "verdant-reach", Name: "Verdant Reach",
				ClassBonusBp: map[string]int64{"water": 1500, "ice": 500},
				BaseWaveSize: 4, WaveGrowthBp: 2000, HPGrowthBp: 1500,
				WaveInterval: 240, WaveCount: 10,
				Composition: []string{"husk", "sapper", "husk", "warden", "brute", "mender", "husk", "blinker", "catapult"},
			},
			{
				ID: "ashen-steppe", Name: "Ashen Steppe",
				ClassBonusBp: map[string]int64{"fire": 1200},
				BaseWaveSize: 5, WaveGrowthBp: 2500, HPGrowthBp: 2000,
				WaveInterval: 210, WaveCount: 12,
				Composition: []string{"husk", "brute", "sapper", "catapult", "warden"},
			},
		},
		Masteries: []MasteryDocument{
			{ID: "focused-synergy", Name: "Focused Synergy", Category: "damage", AmplifyBp: 2500},
			{ID: "drillmaster", Name: "Drillmaster", Category: "attack-speed", AmplifyBp: 2000},
			{ID: "bulwark-lore", Name: "Bulwark Lore", Category: "max-hp", AmplifyBp: 1500},
		},
		Combos: []ComboDocument{
			{ID: "steam-burst", Name: "Steam Burst", First: "fire", Second: "ice", Effect: "bonus-damage", BonusPct: 30},
			{ID: "electrocute", Name: "Electrocute", First: "lightning", Second: "water", Effect: "stun", StunTicks: 45},
			{ID: "shatter", Name: "Shatter", First: "physical", Second: "ice", Effect: "armor-break"},
		},
		Synergies: []SynergyDocument{
			{
				ID: "ember-vanguard", Name: "Ember Vanguard",
				Heroes: []string{"pyromancer", "ember-knight"},
				Radius: 10, Category: "damage", BonusBp: 1000,
			},
			{
				ID: "winter-court", Name: "Winter Court",
				Heroes: []string{"frost-archer", "tide-priest", "storm-caller"},
				Radius: 14, Category: "damage-reduction", BonusBp: 800,
			},
		},
	}
}

// DefaultCatalog compiles DefaultDocument. The stock tables are covered by
// tests, so a failure here is a programming error.
func DefaultCatalog() *Catalog {
	catalog, err := Compile(DefaultDocument())
	if err != nil {
		panic(err)
	}
	return catalog
}
