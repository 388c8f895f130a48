package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// backendCandidates lists CLI players in preference order, each reading raw s16le stereo on stdin
func backendCandidates(rate int) []BackendConfig {
	r := strconv.Itoa(rate)
	return []BackendConfig{
		{Type: BackendPulse, Name: "pacat", Args: []string{
			"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback",
		}},
		{Type: BackendPipeWire, Name: "pw-cat", Args: []string{
			"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-",
		}},
		{Type: BackendALSA, Name: "aplay", Args: []string{
			"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q",
		}},
		{Type: BackendSoX, Name: "play", Args: []string{
			"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q",
		}},
		{Type: BackendFFplay, Name: "ffplay", Args: []string{
			"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet",
		}},
	}
}

// lookPath is swapped in tests
var lookPath = exec.LookPath

// DetectBackend searches for available audio backends
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay > OSS
func DetectBackend(rate int) (*BackendConfig, error) {
	for _, c := range backendCandidates(rate) {
		if path, err := lookPath(c.Name); err == nil {
			c.Path = path
			return &c, nil
		}
	}

	// FreeBSD OSS is a direct device write, no exec needed
	if runtime.GOOS == "freebsd" {
		if _, err := os.Stat("/dev/dsp"); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: "/dev/dsp"}, nil
		}
	}

	return nil, ErrNoAudioBackend
}
