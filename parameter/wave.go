package parameter

// Wave director
const (
	// WaveFirstFrame is the frame the first wave spawns
	WaveFirstFrame = 120

	// WaveIntervalFrames is the spacing between waves
	WaveIntervalFrames = 900

	// WaveBaseCount is the hostile count of the first wave
	WaveBaseCount = 3

	// WaveGrowth is added to the count every wave
	WaveGrowth = 2

	// WaveBossEvery spawns a boss on every Nth wave, 0 disables bosses
	WaveBossEvery = 5

	// WaveSpawnInset is how far inside the world edge hostiles appear
	WaveSpawnInset = 16.0
)
