/*
 * xyz.go, part of chemrun.
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

package chem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// XYZRead reads a molecule from an XYZ file.
func XYZRead(path string) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewError(ErrStructure, "", path, err.Error())
	}
	defer f.Close()
	mol, err := XYZReadFrom(f)
	if err != nil {
		return nil, errDecorate(err, "XYZRead: "+path)
	}
	return mol, nil
}

// XYZReadFrom reads one XYZ frame from r: an atom count line, a comment
// line, then one "Symbol x y z" line per atom.
func XYZReadFrom(r io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, NewError(ErrStructure, "", "", "empty XYZ input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || natoms <= 0 {
		return nil, NewError(ErrStructure, "", "", "bad XYZ atom count line: "+scanner.Text())
	}
	scanner.Scan() //comment line, discarded
	symbols := make([]string, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		if !scanner.Scan() {
			return nil, NewError(ErrStructure, "", "", fmt.Sprintf("XYZ input ends after %d of %d atoms", i, natoms))
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, NewError(ErrStructure, "", "", "short XYZ line: "+scanner.Text())
		}
		symbols = append(symbols, fields[0])
		for _, v := range fields[1:4] {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, NewError(ErrStructure, "", "", "bad XYZ coordinate: "+v)
			}
			coords = append(coords, x)
		}
	}
	mol, err := NewMolecule(symbols, coords)
	if err != nil {
		return nil, NewError(ErrStructure, "", "", err.Error())
	}
	return mol, nil
}

// XYZWrite writes the molecule to an XYZ file with the given comment line.
func XYZWrite(path string, mol *Molecule, comment string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return XYZWriteTo(f, mol, comment)
}

// XYZWriteTo writes one XYZ frame for mol to w.
func XYZWriteTo(w io.Writer, mol *Molecule, comment string) error {
	if mol == nil {
		return NewError(ErrStructure, "", "", "nil molecule")
	}
	if _, err := fmt.Fprintf(w, "%d\n%s\n", mol.Len(), comment); err != nil {
		return err
	}
	for i := 0; i < mol.Len(); i++ {
		_, err := fmt.Fprintf(w, "%-3s %12.6f %12.6f %12.6f\n", mol.Symbol(i),
			mol.Coords().At(i, 0), mol.Coords().At(i, 1), mol.Coords().At(i, 2))
		if err != nil {
			return err
		}
	}
	return nil
}
