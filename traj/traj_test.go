/*
 * traj_test.go, part of chemrun.
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

package traj

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/emoreno/chemrun"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

func TestWriteReadRoundtrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "relax.xyz.zst")
	symbols := []string{"O", "H", "H"}
	frames := []*mat.Dense{
		mat.NewDense(3, 3, []float64{0, 0, 0.1, 0, 0.76, -0.48, 0, -0.76, -0.48}),
		mat.NewDense(3, 3, []float64{0, 0, 0.12, 0, 0.75, -0.47, 0, -0.75, -0.47}),
		mat.NewDense(3, 3, []float64{0, 0, 0.119, 0, 0.763, -0.477, 0, -0.763, -0.477}),
	}
	energies := []float64{0.5, 0.1, 0.003}

	w, err := NewWriter(name, symbols)
	if err != nil {
		t.Fatal(err)
	}
	if w.Len() != 3 {
		t.Errorf("writer reports %d atoms, want 3", w.Len())
	}
	if err := w.WritePath(frames, energies); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(name)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(frames) {
		t.Fatalf("read %d frames, want %d", len(got), len(frames))
	}
	for i, f := range got {
		if math.Abs(f.Energy-energies[i]) > 1e-9 {
			t.Errorf("frame %d: energy %v, want %v", i, f.Energy, energies[i])
		}
		for a := 0; a < 3; a++ {
			for j := 0; j < 3; j++ {
				if math.Abs(f.Coords.At(a, j)-frames[i].At(a, j)) > 1e-6 {
					t.Errorf("frame %d atom %d coord %d: %v, want %v",
						i, a, j, f.Coords.At(a, j), frames[i].At(a, j))
				}
			}
		}
	}
	if s := r.Symbols(); len(s) != 3 || s[0] != "O" || s[1] != "H" {
		t.Errorf("bad symbols from reader: %v", s)
	}
}

func TestWriterRejectsBadFrames(t *testing.T) {
	name := filepath.Join(t.TempDir(), "bad.xyz.zst")
	w, err := NewWriter(name, []string{"H", "F"})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.WNext(nil, 0); !errors.Is(err, chem.ErrStructure) {
		t.Errorf("nil coordinates: expected a structure error, got %v", err)
	}
	wrong := mat.NewDense(3, 3, nil)
	if err := w.WNext(wrong, 0); !errors.Is(err, chem.ErrStructure) {
		t.Errorf("wrong atom count: expected a structure error, got %v", err)
	}
}

func TestWriterAfterClose(t *testing.T) {
	name := filepath.Join(t.TempDir(), "closed.xyz.zst")
	w, err := NewWriter(name, []string{"H"})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil { //second close is a no-op
		t.Errorf("second close failed: %v", err)
	}
	if err := w.WNext(mat.NewDense(1, 3, nil), 0); !errors.Is(err, chem.ErrConfiguration) {
		t.Errorf("write after close: expected a configuration error, got %v", err)
	}
}

func TestEmptyTrajectory(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.xyz.zst")
	w, err := NewWriter(name, []string{"H"})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF on empty trajectory, got %v", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.xyz.zst"))
	if !errors.Is(err, chem.ErrConfiguration) {
		t.Errorf("expected a configuration error, got %v", err)
	}
}

//a frame whose elements differ from the first frame is corruption even
//when the atom count matches.
func TestReaderRejectsChangedElements(t *testing.T) {
	name := filepath.Join(t.TempDir(), "corrupt.xyz.zst")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	frames := "2\nenergy=0.0\nH   0.0 0.0 0.0\nF   0.0 0.0 0.9\n" +
		"2\nenergy=-0.1\nH   0.0 0.0 0.0\nO   0.0 0.0 0.9\n"
	if _, err := zw.Write([]byte(frames)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(name)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := r.Next(); err != nil {
		t.Fatal(err)
	}
	_, err = r.Next()
	if !errors.Is(err, chem.ErrParse) {
		t.Errorf("expected a parse error for changed elements, got %v", err)
	}
}
