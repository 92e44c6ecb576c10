package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/pondsim/internal/config"
	"github.com/san-kum/pondsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Mode      string             `json:"mode"`
	Script    string             `json:"script"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	Events    int                `json:"events"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Pond      config.PondConfig  `json:"pond"`
	Probe     [2]int             `json:"probe"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata describes a finished run of cfg.
func NewMetadata(cfg *config.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Mode:      cfg.Pond.Mode,
		Script:    cfg.Run.Script,
		Timestamp: time.Now(),
		Seed:      cfg.Run.Seed,
		Ticks:     result.Ticks,
		Events:    result.Events,
		ElapsedMS: float64(result.Elapsed.Microseconds()) / 1000,
		Pond:      cfg.Pond,
		Probe:     [2]int{cfg.Run.ProbeX, cfg.Run.ProbeY},
		Metrics:   result.Metrics,
	}
}

// Save writes metadata.json and samples.csv into a fresh run directory and
// returns the run ID. name prefixes the ID; meta.ID is overwritten.
func (s *Store) Save(name string, meta RunMetadata, samples []sim.Sample) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	runID, runDir, err := s.allocate(name)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeRun(runDir, meta, samples); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			err = errors.Join(err, fmt.Errorf("removing partial run: %w", rmErr))
		}
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, samples []sim.Sample) error {
	err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	if samples == nil {
		samples = []sim.Sample{}
	}
	err = writeFile(filepath.Join(runDir, samplesFile), func(f *os.File) error {
		return gocsv.MarshalFile(&samples, f)
	})
	if err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// writeFile creates path, runs write and reports the first of the write and
// close errors.
func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// allocate creates a unique run directory named after name and the current
// second, suffixed when several runs land in the same second.
func (s *Store) allocate(name string) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s_%d", base, i)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
	}
}

// List returns all readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("reading metadata of %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	samples := []sim.Sample{}
	if err := gocsv.UnmarshalFile(file, &samples); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return samples, nil
		}
		return nil, fmt.Errorf("reading samples of %s: %w", runID, err)
	}
	return samples, nil
}
