// Package metadata writes the per-token JSON documents of a ticket series.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/zkarcade/campaign-tools/config"
	"github.com/zkarcade/campaign-tools/metrics"
	"github.com/zkarcade/campaign-tools/utils"
)

const dirName = "metadata"

// Token is the metadata document of a single token id.
type Token struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Generator struct {
	cfg     config.MetadataConfig
	log     log.Logger
	metrics *metrics.Recorder
}

func NewGenerator(cfg config.MetadataConfig, logger log.Logger, recorder *metrics.Recorder) (*Generator, error) {
	if cfg.Count < 0 {
		return nil, errors.Errorf("count must not be negative, got %d", cfg.Count)
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Generator{cfg: cfg, log: logger, metrics: recorder}, nil
}

// Dir is the directory the documents are written to.
func (g *Generator) Dir() string {
	return filepath.Join(g.cfg.OutDir, dirName)
}

// TokenFor builds the document of tokenID.
func (g *Generator) TokenFor(tokenID int) Token {
	return Token{
		Name:        fmt.Sprintf("%s #%d", g.cfg.BaseName, tokenID),
		Description: g.cfg.Description,
		Image:       g.cfg.Image,
	}
}

// Generate creates the output directory and writes the documents of token ids
// 1..Count, one file per id named after it. It returns the absolute directory.
func (g *Generator) Generate() (string, error) {
	dir, err := filepath.Abs(g.Dir())
	if err != nil {
		return "", errors.Wrap(err, "resolve output directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}

	for tokenID := 1; tokenID <= g.cfg.Count; tokenID++ {
		data, err := Encode(g.TokenFor(tokenID))
		if err != nil {
			return "", errors.Wrapf(err, "encode token %d", tokenID)
		}
		if err := utils.WriteFileAtomic(filepath.Join(dir, strconv.Itoa(tokenID)), data); err != nil {
			return "", errors.Wrapf(err, "write token %d", tokenID)
		}
		g.metrics.IncMetadataFileWritten()
	}

	g.log.Info("Wrote metadata files", "count", g.cfg.Count, "dir", dir)
	if g.cfg.MetricsFile != "" {
		if err := g.metrics.WriteFile(g.cfg.MetricsFile); err != nil {
			g.log.Warn("Could not write metrics file", "file", g.cfg.MetricsFile, "error", err)
		}
	}
	return dir, nil
}

// Encode renders a document with two-space indentation, without escaping
// non-ASCII or HTML characters and without a trailing newline.
func Encode(t Token) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
