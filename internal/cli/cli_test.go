package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/bootstrap"
	"github.com/homewiz/homewiz-backend/internal/config"
	"github.com/homewiz/homewiz-backend/internal/infra/report"
)

// newTestApp shares one in-memory backend across every command run.
func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{IDStrategy: config.IDStrategySequence, MonitorInterval: 10 * time.Millisecond}
	backend, err := bootstrap.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	app := NewApp(cfg, zap.NewNop())
	app.OpenBackend = func(ctx context.Context) (*bootstrap.Backend, error) {
		return backend, nil
	}
	return app
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedIsRerunnable(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Operators created: 5")
	assert.Contains(t, out, "Buildings created: 3")
	assert.Contains(t, out, "Rooms created:     43")
	assert.Contains(t, out, "Leads created:     3")

	out, err = run(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Operators created: 0")
	assert.Contains(t, out, "Leads created:     0")
}

func TestCheckPrintsCountsAndSample(t *testing.T) {
	app := newTestApp(t)
	_, err := run(t, app, "seed")
	require.NoError(t, err)

	out, err := run(t, app, "check", "--sample", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Store: memory (reachable)")
	assert.Contains(t, out, "rooms      43")
	assert.Contains(t, out, `BLD_MARKET "Market Street Residences"`)
	assert.NotContains(t, out, "BLD_SOMA")
	assert.Contains(t, out, "All checks passed")
}

func TestExportWritesWorkbook(t *testing.T) {
	app := newTestApp(t)
	_, err := run(t, app, "seed")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roll.xlsx")
	out, err := run(t, app, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 43 rooms")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.RentRollSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 44)

	summary, err := f.GetRows(report.SummarySheet)
	require.NoError(t, err)
	assert.Len(t, summary, 4)
}

func TestMonitorStopsAfterDuration(t *testing.T) {
	app := newTestApp(t)

	start := time.Now()
	out, err := run(t, app, "monitor", "--duration", "50ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Monitoring memory store every 10ms")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "migrate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
