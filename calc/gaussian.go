/*
 * gaussian.go, part of chemrun.
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

package calc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	chem "github.com/emoreno/chemrun"
)

const (
	//GaussianLabel names the external Gaussian family.
	GaussianLabel = "gaussian"

	//GaussianLog is the log file name inside the working directory. It
	//doubles as the geometry file relax jobs read back.
	GaussianLog = "Gaussian.log"

	gaussianInput = "Gaussian.com"
)

//link0Keys are written as %key=value before the route section instead of on
//the route line itself.
var link0Keys = map[string]bool{
	"mem":         true,
	"chk":         true,
	"nprocshared": true,
}

// Gaussian runs a Gaussian-style external program. The input file is built
// from the merged parameter set; results are read from the textual log by
// the log summarizer, not by this type.
type Gaussian struct {
	config  Config
	command string
}

// NewGaussian builds a Gaussian calculator from a merged configuration.
// command is the program invocation, empty for the default "g16".
func NewGaussian(config Config, command string) (*Gaussian, error) {
	if err := config.Validate(GaussianLabel); err != nil {
		return nil, err
	}
	if command == "" {
		command = "g16"
	}
	return &Gaussian{config: config, command: command}, nil
}

func (G *Gaussian) Label() string {
	return GaussianLabel
}

// LogFile returns the log file name inside the working directory.
func (G *Gaussian) LogFile() string {
	return GaussianLog
}

// Execute writes the input file for mol inside dir and runs the program,
// blocking until it exits. A non-zero exit or a missing log file is a
// calculation failure.
func (G *Gaussian) Execute(dir string, mol *chem.Molecule) error {
	in, err := os.Create(filepath.Join(dir, gaussianInput))
	if err != nil {
		return chem.NewError(chem.ErrCalculation, GaussianLabel, gaussianInput, err.Error())
	}
	if err := G.writeInput(in, mol); err != nil {
		in.Close()
		return err
	}
	in.Close()
	command := exec.Command("sh", "-c",
		fmt.Sprintf("%s < %s > %s 2>&1", G.command, gaussianInput, GaussianLog))
	command.Dir = dir
	if err := command.Run(); err != nil {
		return chem.NewError(chem.ErrCalculation, GaussianLabel, G.command, err.Error())
	}
	if _, err := os.Stat(filepath.Join(dir, GaussianLog)); err != nil {
		return chem.NewError(chem.ErrCalculation, GaussianLabel, G.command,
			"program exited without writing "+GaussianLog)
	}
	return nil
}

//writeInput writes a Gaussian input file: link0 lines, the route section
//assembled from the parameter set in lexical key order, the title, the
//charge/multiplicity line and the geometry. A short write surfaces as an
//error so a truncated input never reaches the program.
func (G *Gaussian) writeInput(w io.Writer, mol *chem.Molecule) error {
	buf := bufio.NewWriter(w)
	p := G.config.Params
	for _, k := range p.SortedKeys() {
		if link0Keys[k] {
			fmt.Fprintf(buf, "%%%s=%s\n", k, formatOption(p[k]))
		}
	}
	route := []string{"#P"}
	if xc, ok := p["xc"].(string); ok {
		method := xc
		if basis, ok := p["basis"].(string); ok {
			method += "/" + basis
		}
		route = append(route, method)
	}
	for _, k := range p.SortedKeys() {
		if link0Keys[k] || k == "xc" || k == "basis" {
			continue
		}
		route = append(route, formatRouteKey(k, p[k]))
	}
	fmt.Fprintf(buf, "%s\n\nchemrun calculation\n\n", strings.Join(route, " "))
	fmt.Fprintf(buf, "%d %d\n", G.config.Charge, G.config.Multi)
	for i := 0; i < mol.Len(); i++ {
		fmt.Fprintf(buf, "%-3s %14.8f %14.8f %14.8f\n", mol.Symbol(i),
			mol.Coords().At(i, 0), mol.Coords().At(i, 1), mol.Coords().At(i, 2))
	}
	fmt.Fprint(buf, "\n")
	if err := buf.Flush(); err != nil {
		return chem.NewError(chem.ErrCalculation, GaussianLabel, gaussianInput, err.Error())
	}
	return nil
}

//formatRouteKey renders one route-section option. An empty string is a bare
//keyword, a list becomes key(a,b), ioplist keeps Gaussian's iop syntax, and
//anything else is key=value.
func formatRouteKey(key string, v any) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return key
		}
		return fmt.Sprintf("%s=%s", key, val)
	case []string:
		if key == "ioplist" {
			return fmt.Sprintf("iop(%s)", strings.Join(val, ","))
		}
		return fmt.Sprintf("%s(%s)", key, strings.Join(val, ","))
	default:
		return fmt.Sprintf("%s=%v", key, val)
	}
}

func formatOption(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
