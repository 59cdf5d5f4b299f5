/*
 * traj.go, part of chemrun.
 *
 * Copyright 2026 Esteban Moreno <emoreno{at}tutanotaDOTcom>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package traj reads and writes zstd-compressed multi-frame XYZ
//trajectories, one frame per optimization or IRC step, with the frame
//energy stored in the XYZ comment line. Files written by this package end
//in ".xyz.zst" by convention, but any name works.
package traj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	chem "github.com/emoreno/chemrun"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

const energyTag = "energy="

// Frame is a single trajectory snapshot.
type Frame struct {
	Coords *mat.Dense
	Energy float64
}

// Writer appends frames to a compressed trajectory file. All frames must
// have the same atoms, given once at creation.
type Writer struct {
	f       *os.File
	zw      *zstd.Encoder
	symbols []string
	open    bool
}

// NewWriter creates the trajectory file at name, truncating any previous
// content. The symbol list fixes the atom count for every frame.
func NewWriter(name string, symbols []string) (*Writer, error) {
	if len(symbols) == 0 {
		return nil, chem.NewError(chem.ErrConfiguration, "traj", name, "no atoms given")
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, chem.NewError(chem.ErrConfiguration, "traj", name, err.Error())
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, chem.NewError(chem.ErrConfiguration, "traj", name, err.Error())
	}
	return &Writer{f: f, zw: zw, symbols: append([]string{}, symbols...), open: true}, nil
}

// Len returns the number of atoms per frame.
func (w *Writer) Len() int { return len(w.symbols) }

// WNext writes one frame.
func (w *Writer) WNext(coords *mat.Dense, energy float64) error {
	if !w.open {
		return chem.NewError(chem.ErrConfiguration, "traj", w.f.Name(), "write on a closed trajectory")
	}
	if coords == nil {
		return chem.NewError(chem.ErrStructure, "traj", w.f.Name(), "nil coordinates")
	}
	r, c := coords.Dims()
	if r != len(w.symbols) || c != 3 {
		return chem.NewError(chem.ErrStructure, "traj", w.f.Name(),
			fmt.Sprintf("frame has %dx%d coordinates, want %dx3", r, c, len(w.symbols)))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s%.10f\n", len(w.symbols), energyTag, energy)
	for i, s := range w.symbols {
		fmt.Fprintf(&b, "%-3s %12.6f %12.6f %12.6f\n", s, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	if _, err := w.zw.Write([]byte(b.String())); err != nil {
		return chem.NewError(chem.ErrCalculation, "traj", w.f.Name(), err.Error())
	}
	return nil
}

// WritePath writes a whole sequence of frames sharing one symbol list.
func (w *Writer) WritePath(coords []*mat.Dense, energies []float64) error {
	if len(coords) != len(energies) {
		return chem.NewError(chem.ErrConfiguration, "traj", w.f.Name(), "coordinate and energy counts differ")
	}
	for i, c := range coords {
		if err := w.WNext(c, energies[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the compressor and closes the file. The writer cannot be
// used afterwards.
func (w *Writer) Close() error {
	if !w.open {
		return nil
	}
	w.open = false
	if err := w.zw.Close(); err != nil {
		w.f.Close()
		return chem.NewError(chem.ErrCalculation, "traj", w.f.Name(), err.Error())
	}
	return w.f.Close()
}

// Reader iterates over the frames of a compressed trajectory.
type Reader struct {
	f        *os.File
	zr       *zstd.Decoder
	h        *bufio.Reader
	symbols  []string
	readable bool
}

// NewReader opens a trajectory for reading. The symbol list is taken from
// the first frame; every later frame must match it.
func NewReader(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, chem.NewError(chem.ErrConfiguration, "traj", name, err.Error())
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, chem.NewError(chem.ErrParse, "traj", name, err.Error())
	}
	return &Reader{f: f, zr: zr, h: bufio.NewReader(zr), readable: true}, nil
}

// Symbols returns the atom symbols seen in the first frame read, or nil if
// no frame has been read yet.
func (r *Reader) Symbols() []string { return r.symbols }

// Next returns the next frame, or io.EOF when the trajectory ends.
func (r *Reader) Next() (*Frame, error) {
	if !r.readable {
		return nil, chem.NewError(chem.ErrConfiguration, "traj", r.f.Name(), "read on a closed trajectory")
	}
	countLine, err := r.h.ReadString('\n')
	if err == io.EOF && countLine == "" {
		r.Close()
		return nil, io.EOF
	}
	if err != nil {
		return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), err.Error())
	}
	n, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || n <= 0 {
		return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "bad atom count line: "+strings.TrimSpace(countLine))
	}
	comment, err := r.h.ReadString('\n')
	if err != nil {
		return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "truncated frame header")
	}
	frame := &Frame{Coords: mat.NewDense(n, 3, nil)}
	if i := strings.Index(comment, energyTag); i >= 0 {
		e, err := strconv.ParseFloat(strings.TrimSpace(comment[i+len(energyTag):]), 64)
		if err != nil {
			return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "bad energy in frame comment: "+strings.TrimSpace(comment))
		}
		frame.Energy = e
	}
	symbols := make([]string, n)
	for i := 0; i < n; i++ {
		line, err := r.h.ReadString('\n')
		if err != nil {
			return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "truncated frame")
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "bad coordinate line: "+strings.TrimSpace(line))
		}
		symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "bad coordinate: "+fields[j+1])
			}
			frame.Coords.Set(i, j, v)
		}
	}
	if r.symbols == nil {
		r.symbols = symbols
	} else if len(symbols) != len(r.symbols) {
		return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(), "frame atom count changed mid-trajectory")
	} else {
		for i, s := range symbols {
			if s != r.symbols[i] {
				return nil, chem.NewError(chem.ErrParse, "traj", r.f.Name(),
					"frame element changed mid-trajectory: atom "+strconv.Itoa(i)+" went from "+r.symbols[i]+" to "+s)
			}
		}
	}
	return frame, nil
}

// ReadAll reads every remaining frame.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}

// Close releases the decompressor and the file.
func (r *Reader) Close() {
	if !r.readable {
		return
	}
	r.readable = false
	r.zr.Close()
	r.f.Close()
}
