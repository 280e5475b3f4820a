package dataset

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Reader implementors instantiate a measurement cube from a byte stream.
type Reader interface {
	ReadCube(data []byte) (*Cube, error)
}

// JSONReader reads the JSON interchange form of a cube: analyte names, the
// two per-sample metadata columns, and the nested 3-D data block.
type JSONReader struct{}

type jsonCube struct {
	Analytes []string      `json:"analytes"`
	Control  []int         `json:"control"`
	Round    []int         `json:"round"`
	Data     [][][]float64 `json:"data"`
}

// ReadCube implements Reader.
func (JSONReader) ReadCube(data []byte) (*Cube, error) {
	var jc jsonCube
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, errors.Wrapf(err, "could not PARSE cube")
	}
	return NewCube(jc.Analytes, jc.Control, jc.Round, jc.Data)
}

// NewCubeFromFile initializes and creates a cube from the specified source.
func NewCubeFromFile(r Reader, filename string) (*Cube, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not READ cube from %s", filename)
	}

	c, err := r.ReadCube(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not build cube from %s", filename)
	}

	return c, nil
}
