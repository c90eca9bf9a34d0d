package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/apidoc/internal/extract"
	"github.com/mvp-joe/apidoc/internal/javasrc"
)

// Test Plan for Runner:
// - Scans the fixture directory: records from good files, failure for the broken one
// - Records follow file order then method order regardless of worker count
// - Unreadable files are reported as failures without aborting the run
// - A cancelled context aborts the run
// - Progress callbacks fire once per file and once on completion

const fixtureDir = "../../testdata/java/input"

type recordingProgress struct {
	mu        sync.Mutex
	processed []string
	completed *Stats
}

func (p *recordingProgress) OnDiscoveryComplete(totalFiles int) {}

func (p *recordingProgress) OnUnitProcessed(fileName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = append(p.processed, fileName)
}

func (p *recordingProgress) OnComplete(stats *Stats) {
	p.completed = stats
}

func discoverFixtures(t *testing.T) []string {
	t.Helper()
	fd, err := NewFileDiscovery(fixtureDir, []string{"**/*.java"}, nil)
	require.NoError(t, err)
	files, err := fd.DiscoverFiles()
	require.NoError(t, err)
	return files
}

func TestRunner_Fixtures(t *testing.T) {
	t.Parallel()

	files := discoverFixtures(t)
	require.Len(t, files, 3)

	progress := &recordingProgress{}
	runner := NewRunner(Options{Workers: 2, Naming: extract.DefaultNaming(), Progress: progress})

	result, err := runner.Run(context.Background(), files)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken#Broken.java", filepath.Base(result.Failures[0].File))
	assert.ErrorIs(t, result.Failures[0].Err, javasrc.ErrSyntax)

	require.Len(t, result.Records, 3)

	place := result.Records[0]
	assert.Equal(t, "orders", place.Repo)
	assert.Equal(t, "OrderApi.java", place.File)
	assert.Equal(t, "POST", place.Method())
	assert.Equal(t, "/orders", place.FullPath())
	assert.Equal(t, "Place order", place.Documentation())

	find := result.Records[1]
	assert.Equal(t, "users", find.Repo)
	assert.Equal(t, "src/main/java/UserResource.java", find.File)
	assert.Equal(t, "GET", find.Method())
	assert.Equal(t, "users/{id}", find.FullPath())
	assert.Equal(t, "Get user", find.Documentation())
	assert.Equal(t, "Fetch a user by id", find.Notes())

	create := result.Records[2]
	assert.Equal(t, "POST", create.Method())
	assert.Equal(t, "users", create.FullPath())
	assert.Equal(t, `Stores a ""new"" user`, create.Notes())

	assert.Equal(t, Stats{Units: 3, Scanned: 2, Failed: 1, Records: 3, Duration: result.Stats.Duration}, result.Stats)
	assert.Len(t, progress.processed, 3)
	require.NotNil(t, progress.completed)
	assert.Equal(t, 3, progress.completed.Records)
}

func TestRunner_StableOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var files []string
	for i := 0; i < 40; i++ {
		name := filepath.Join(root, fmt.Sprintf("repo#F%02d.java", i))
		source := fmt.Sprintf("@Path(\"r%02d\")\nclass F%02d {\n  @GET void a() {}\n  @POST void b() {}\n}\n", i, i)
		require.NoError(t, os.WriteFile(name, []byte(source), 0644))
		files = append(files, name)
	}

	for _, workers := range []int{1, 3, 16} {
		result, err := NewRunner(Options{Workers: workers, Naming: extract.DefaultNaming()}).Run(context.Background(), files)
		require.NoError(t, err)
		require.Len(t, result.Records, 80)

		for i := 0; i < 40; i++ {
			first, second := result.Records[2*i], result.Records[2*i+1]
			assert.Equal(t, fmt.Sprintf("F%02d.java", i), first.File)
			assert.Equal(t, "GET", first.Method())
			assert.Equal(t, fmt.Sprintf("r%02d", i), first.FullPath())
			assert.Equal(t, "POST", second.Method())
		}
	}
}

func TestRunner_MissingFileIsNotFatal(t *testing.T) {
	t.Parallel()

	files := append([]string{filepath.Join(t.TempDir(), "gone#Gone.java")}, discoverFixtures(t)...)

	result, err := NewRunner(Options{Naming: extract.DefaultNaming()}).Run(context.Background(), files)
	require.NoError(t, err)
	assert.Len(t, result.Failures, 2)
	assert.Len(t, result.Records, 3)
	assert.ErrorIs(t, result.Failures[0].Err, os.ErrNotExist)
}

func TestRunner_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(Options{Naming: extract.DefaultNaming()}).Run(ctx, discoverFixtures(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestRunner_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := NewRunner(Options{}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 0, result.Stats.Units)
}
