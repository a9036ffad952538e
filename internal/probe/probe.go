package probe

import (
	"os/exec"
	"regexp"
	"runtime"
	"strconv"

	"github.com/tomsh-hr/pingstat/internal/models"
)

// perRequestTimeoutSec bounds how long a single echo request may wait.
const perRequestTimeoutSec = 3

// Pinger wraps the system ping utility.
type Pinger struct{}

// New creates a new Pinger
func New() *Pinger {
	return &Pinger{}
}

// Probe sends count echo requests to host and parses the result. A host
// that cannot be reached or resolved is not an error: it yields the
// degraded measurement (100% loss, no RTT data).
func (p *Pinger) Probe(host string, count int) models.Measurement {
	// Platform-specific ping command
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("ping", "-n", strconv.Itoa(count), "-w", strconv.Itoa(perRequestTimeoutSec*1000), host)
	} else {
		cmd = exec.Command("ping", "-c", strconv.Itoa(count), "-W", strconv.Itoa(perRequestTimeoutSec), host)
	}

	// ping exits non-zero on total loss but still prints a summary,
	// so the exit status is ignored and only the output is parsed.
	output, _ := cmd.CombinedOutput()

	return parsePingOutput(string(output))
}

var (
	// Linux: "4 packets transmitted, 3 received, 25% packet loss"
	// macOS: "4 packets transmitted, 3 packets received, 25.0% packet loss"
	summaryRe = regexp.MustCompile(`(\d+) packets transmitted, (\d+)(?: packets)? received`)

	// Linux: "rtt min/avg/max/mdev = 12.3/13.4/15.6/1.2 ms"
	// macOS: "round-trip min/avg/max/stddev = 12.3/13.4/15.6/1.2 ms"
	rttRe = regexp.MustCompile(`(?:rtt|round-trip) min/avg/max/(?:mdev|stddev) = ([0-9.]+)/([0-9.]+)/([0-9.]+)/([0-9.]+) ms`)
)

// parsePingOutput converts raw ping output into a Measurement. Any
// output without a parseable transmit summary, including an empty one
// from a crashed or absent ping binary, maps to the degraded result.
func parsePingOutput(output string) models.Measurement {
	matches := summaryRe.FindStringSubmatch(output)
	if matches == nil {
		return models.Degraded()
	}

	transmitted, err := strconv.Atoi(matches[1])
	if err != nil || transmitted == 0 {
		return models.Degraded()
	}
	received, err := strconv.Atoi(matches[2])
	if err != nil {
		return models.Degraded()
	}

	m := models.Measurement{
		Loss: (1 - float64(received)/float64(transmitted)) * 100,
	}

	if rtt := rttRe.FindStringSubmatch(output); rtt != nil {
		fields := make([]*float64, 4)
		for i, raw := range rtt[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return models.Measurement{Loss: m.Loss}
			}
			fields[i] = &v
		}
		m.Min, m.Avg, m.Max, m.Mdev = fields[0], fields[1], fields[2], fields[3]
	}

	return m
}
