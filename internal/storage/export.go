package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/pondsim/internal/sim"
)

type ExportData struct {
	Metadata RunMetadata  `json:"metadata"`
	Samples  []sim.Sample `json:"samples"`
}

func ExportJSON(path string, meta RunMetadata, samples []sim.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, samples)
}

func WriteJSON(w io.Writer, meta RunMetadata, samples []sim.Sample) error {
	if samples == nil {
		samples = []sim.Sample{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Metadata: meta, Samples: samples})
}

// WriteCSV writes samples with a header row.
func WriteCSV(w io.Writer, samples []sim.Sample) error {
	if samples == nil {
		samples = []sim.Sample{}
	}
	return gocsv.Marshal(&samples, w)
}
