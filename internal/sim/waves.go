package sim

// spawnArrivals releases whatever the battle shape schedules: pillar waves
// on their cadence, or the scripted spawn list when no pillar drives the
// run. It runs at the top of the tick so newcomers get a full tick of
// treatment.
func (s *GameState) spawnArrivals() {
	if s.Pillar != nil {
		s.spawnWave()
		return
	}
	s.spawnScripted()
}

// spawnWave releases the next pillar wave once its tick arrives: wave w is
// due at tick (w-1)·interval+1, so the first wave spawns on the first
// tick. Size and HP scale linearly per wave started; the composition
// rotation carries across waves instead of restarting.
func (s *GameState) spawnWave() {
	p := s.Pillar
	if !s.endless && s.wavesDone >= p.WaveCount {
		return
	}
	due := s.wavesDone*p.WaveInterval + 1
	if s.Tick < due {
		return
	}
	wave := s.wavesDone + 1
	s.wavesDone = wave

	count := p.BaseWaveSize * (10000 + (wave-1)*p.WaveGrowthBp) / 10000
	if count < 1 {
		count = 1
	}
	hpScaleBp := 10000 + (wave-1)*p.HPGrowthBp

	s.Stats.WavesSpawned++
	s.Journal.Append(Event{Type: EventWaveStarted, Tick: s.Tick, Wave: wave})
	for i := int64(0); i < count; i++ {
		id := p.Composition[int(s.spawnIndex)%len(p.Composition)]
		s.spawnIndex++
		spec, ok := s.Catalog.Enemy(id)
		if !ok {
			s.assert(false, "pillar composition references unknown enemy %q", id)
			continue
		}
		s.SpawnEnemy(spec, hpScaleBp, wave)
	}
}

// spawnScripted drains every scheduled entry due this tick, in list order.
// The orchestrator pre-sorts entries by tick.
func (s *GameState) spawnScripted() {
	for s.scriptNext < len(s.scripted) && s.scripted[s.scriptNext].Tick <= s.Tick {
		entry := s.scripted[s.scriptNext]
		s.scriptNext++
		if entry.Wave > s.wavesDone {
			s.wavesDone = entry.Wave
			s.Stats.WavesSpawned++
			s.Journal.Append(Event{Type: EventWaveStarted, Tick: s.Tick, Wave: entry.Wave})
		}
		s.SpawnEnemy(entry.Spec, entry.HPScaleBp, entry.Wave)
	}
}

// wavesExhausted reports whether no further spawn can ever arrive.
func (s *GameState) wavesExhausted() bool {
	if s.Pillar != nil {
		return !s.endless && s.wavesDone >= s.Pillar.WaveCount
	}
	return s.scriptNext >= len(s.scripted)
}
