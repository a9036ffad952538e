// Package app wires the registry, probe adapter, sample store and
// confirmation flow into the operations the CLI exposes. Everything runs
// sequentially: hosts are probed one at a time, in registry order, and
// each store handle lives only for the duration of one operation.
package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tomsh-hr/pingstat/internal/config"
	"github.com/tomsh-hr/pingstat/internal/models"
	"github.com/tomsh-hr/pingstat/internal/prompt"
	"github.com/tomsh-hr/pingstat/internal/registry"
	"github.com/tomsh-hr/pingstat/internal/report"
)

// ErrNoConnectivity is returned when none of the anchor addresses
// answer: the probe run is skipped entirely rather than recording a
// 100%-loss sample for every host.
var ErrNoConnectivity = errors.New("no internet connectivity, probe run skipped")

// ErrNotRegistered is the graceful outcome of referencing an unknown
// host and declining to register it.
var ErrNotRegistered = errors.New("host not registered")

// App holds the collaborators for one CLI invocation.
type App struct {
	cfg    config.Config
	reg    *registry.Registry
	prober models.Prober
	store  models.SampleStore
	ask    *prompt.Prompter
	out    io.Writer
}

func New(cfg config.Config, reg *registry.Registry, prober models.Prober, store models.SampleStore, ask *prompt.Prompter, out io.Writer) *App {
	return &App{cfg: cfg, reg: reg, prober: prober, store: store, ask: ask, out: out}
}

// ListHosts returns the registered hosts in order.
func (a *App) ListHosts() []string {
	return a.reg.Hosts()
}

// AddHost registers a host after a single-sample reachability check.
// When the check fails the confirmation flow offers accepting the host
// anyway, substituting another address (itself re-probed, looping on
// failure), or cancelling with no mutation.
func (a *App) AddHost(host string) (registry.AddResult, error) {
	if a.reg.Contains(host) {
		return registry.AlreadyPresent, nil
	}

	current := host
	for {
		if a.prober.Probe(current, 1).Reachable() {
			return registry.Added, a.reg.Append(current)
		}

		choice, replacement := a.ask.FailedProbeChoice(current)
		switch choice {
		case prompt.Accept:
			return registry.Added, a.reg.Append(current)
		case prompt.Replace:
			if a.reg.Contains(replacement) {
				return registry.AlreadyPresent, nil
			}
			current = replacement
		case prompt.Cancel:
			return registry.Declined, nil
		}
	}
}

// RemoveHost drops a host from the registry. Its recorded samples are
// kept: removal never deletes historical data.
func (a *App) RemoveHost(host string) (registry.RemoveResult, error) {
	return a.reg.Remove(host)
}

// ensureRegistered resolves a host named on the command line. Unknown
// hosts trigger the register-now flow; declining aborts the outer
// command with ErrNotRegistered.
func (a *App) ensureRegistered(host string) error {
	if a.reg.Contains(host) {
		return nil
	}
	if !a.ask.ConfirmRegister(host) {
		return ErrNotRegistered
	}
	result, err := a.AddHost(host)
	if err != nil {
		return err
	}
	if result == registry.Declined {
		return ErrNotRegistered
	}
	return nil
}

// checkConnectivity probes the anchor addresses with one echo request
// each; any answer means the path to the internet is up.
func (a *App) checkConnectivity() bool {
	for _, anchor := range a.cfg.Anchors {
		if a.prober.Probe(anchor, 1).Reachable() {
			return true
		}
	}
	return false
}

// ProbeHost probes one host and records the sample. The host must be
// registered or get registered through the confirmation flow first.
func (a *App) ProbeHost(host string) error {
	if err := a.ensureRegistered(host); err != nil {
		return err
	}
	if !a.checkConnectivity() {
		return ErrNoConnectivity
	}
	return a.probeAndRecord(host)
}

// ProbeAll probes every registered host sequentially, in registry
// order. A store failure for one host is reported and does not abort
// the rest of the run.
func (a *App) ProbeAll() error {
	hosts := a.reg.Hosts()
	if len(hosts) == 0 {
		fmt.Fprintln(a.out, "no servers registered")
		return nil
	}
	if !a.checkConnectivity() {
		return ErrNoConnectivity
	}

	for _, host := range hosts {
		if err := a.probeAndRecord(host); err != nil {
			logrus.Errorf("recording sample for %s: %v", host, err)
		}
	}
	return nil
}

func (a *App) probeAndRecord(host string) error {
	m := a.prober.Probe(host, a.cfg.ProbeCount)
	if err := a.store.Insert(host, m); err != nil {
		return err
	}

	if m.Min != nil {
		fmt.Fprintf(a.out, "%s: min/avg/max/mdev = %s/%s/%s/%s ms, loss %s\n",
			host,
			report.FormatRTT(m.Min), report.FormatRTT(m.Avg),
			report.FormatRTT(m.Max), report.FormatRTT(m.Mdev),
			report.FormatLoss(m.Loss))
	} else {
		fmt.Fprintf(a.out, "%s: no reply, loss %s\n", host, report.FormatLoss(m.Loss))
	}
	return nil
}

// Stats prints bucketed aggregates for one host, or for every registered
// host when host is empty.
func (a *App) Stats(host string, g models.Granularity, limit int) error {
	hosts, err := a.resolveHosts(host)
	if err != nil {
		return err
	}

	for _, h := range hosts {
		buckets, err := a.store.QueryBuckets(h, g, limit)
		if err != nil {
			logrus.Errorf("reading samples for %s: %v", h, err)
			continue
		}
		if len(hosts) > 1 {
			fmt.Fprintf(a.out, "%s:\n", h)
		}
		if len(buckets) == 0 {
			fmt.Fprintf(a.out, "no samples recorded for %s\n", h)
			continue
		}
		report.BucketTable(g, buckets).Print(a.out)
	}
	return nil
}

// reportWindowDays bounds how much daily history a report covers.
const reportWindowDays = 365

// Report writes a text summary and a PNG latency chart per host into
// outDir.
func (a *App) Report(host, outDir string) error {
	hosts, err := a.resolveHosts(host)
	if err != nil {
		return err
	}

	gen, err := report.NewGenerator(outDir)
	if err != nil {
		return err
	}

	for _, h := range hosts {
		buckets, err := a.store.QueryBuckets(h, models.Daily, reportWindowDays)
		if err != nil {
			logrus.Errorf("reading samples for %s: %v", h, err)
			continue
		}
		if err := gen.TextSummary(h, buckets); err != nil {
			return err
		}
		if err := gen.LatencyChart(h, buckets); err != nil {
			logrus.Warnf("chart for %s skipped: %v", h, err)
		}
	}
	fmt.Fprintf(a.out, "report written to %s\n", outDir)
	return nil
}

func (a *App) resolveHosts(host string) ([]string, error) {
	if host != "" {
		if err := a.ensureRegistered(host); err != nil {
			return nil, err
		}
		return []string{host}, nil
	}
	hosts := a.reg.Hosts()
	if len(hosts) == 0 {
		fmt.Fprintln(a.out, "no servers registered")
	}
	return hosts, nil
}
