/*
 * runner.go, part of chemrun.
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

//Package runner gives every calculator invocation a private working
//directory and controls what happens to it afterwards. Successful runs are
//removed unless Settings.KeepScratch asks otherwise; failed runs are always
//kept, renamed with a "-failed" suffix, so their partial output can be
//inspected.
package runner

import (
	"io"
	"log"
	"os"
	"path/filepath"

	chem "github.com/emoreno/chemrun"
)

// Job is a finished calculator invocation and its working directory. The
// caller summarizes from Dir and then calls Clean.
type Job struct {
	Dir     string
	keep    bool
	cleaned bool
}

// Run creates a unique scratch directory, copies the named extra files into
// it, and executes the calculator there, blocking until it finishes. On
// calculator failure the directory is renamed with a "-failed" suffix, kept,
// and an ErrCalculation is returned.
func Run(c chem.Calculator, mol *chem.Molecule, s *chem.Settings, copyFiles ...string) (*Job, error) {
	s = s.OrDefault()
	dir, err := os.MkdirTemp(s.ScratchDir, "chemrun-"+c.Label()+"-")
	if err != nil {
		return nil, chem.NewError(chem.ErrConfiguration, c.Label(), "", err.Error())
	}
	for _, f := range copyFiles {
		if err := copyIn(f, dir); err != nil {
			os.RemoveAll(dir)
			return nil, err
		}
	}
	if err := c.Execute(dir, mol); err != nil {
		failed := dir + "-failed"
		if rerr := os.Rename(dir, failed); rerr != nil {
			log.Printf("could not rename failed scratch directory %s: %v", dir, rerr)
			failed = dir
		}
		if _, ok := err.(chem.Error); ok {
			return &Job{Dir: failed, keep: true}, err
		}
		return &Job{Dir: failed, keep: true}, chem.NewError(chem.ErrCalculation, c.Label(), "", err.Error())
	}
	return &Job{Dir: dir, keep: s.KeepScratch}, nil
}

// Retrieve returns the path of a file the calculator left in the working
// directory, or an ErrCalculation if the file is not there.
func (j *Job) Retrieve(name string) (string, error) {
	p := filepath.Join(j.Dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", chem.NewError(chem.ErrCalculation, "runner", name, "expected output missing: "+err.Error())
	}
	return p, nil
}

// Clean removes the working directory unless the job is marked for
// retention. Calling it more than once is harmless.
func (j *Job) Clean() {
	if j == nil || j.cleaned || j.keep {
		return
	}
	j.cleaned = true
	if err := os.RemoveAll(j.Dir); err != nil {
		log.Printf("could not remove scratch directory %s: %v", j.Dir, err)
	}
}

// Kept reports whether the working directory outlives the job.
func (j *Job) Kept() bool { return j.keep }

func copyIn(src, dir string) error {
	in, err := os.Open(src)
	if err != nil {
		return chem.NewError(chem.ErrConfiguration, "runner", src, err.Error())
	}
	defer in.Close()
	out, err := os.Create(filepath.Join(dir, filepath.Base(src)))
	if err != nil {
		return chem.NewError(chem.ErrConfiguration, "runner", src, err.Error())
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return chem.NewError(chem.ErrConfiguration, "runner", src, err.Error())
	}
	return nil
}
