/*
 * settings.go, part of chemrun.
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
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the process-wide configuration recipes receive explicitly.
// There is no mutable global: load one, pass it around. A nil *Settings is
// always usable and means DefaultSettings().
type Settings struct {
	//Path of the potential model file for the in-process family.
	ModelPath string `yaml:"model_path"`

	//Command used to invoke the external Gaussian-style program.
	GaussianCommand string `yaml:"gaussian_command"`

	//Parent directory for per-invocation scratch directories. Empty
	//means the OS temporary directory.
	ScratchDir string `yaml:"scratch_dir"`

	//Keep scratch directories of successful runs instead of removing
	//them. Failed runs are always kept.
	KeepScratch bool `yaml:"keep_scratch"`

	//Fail relaxation recipes whose final force norm is above the
	//requested threshold.
	CheckConvergence bool `yaml:"check_convergence"`
}

// DefaultSettings returns the settings used when the caller supplies none.
func DefaultSettings() *Settings {
	return &Settings{
		GaussianCommand:  "g16",
		CheckConvergence: true,
	}
}

// LoadSettings reads settings from a YAML file. Missing keys keep their
// default values.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError(ErrConfiguration, "", path, err.Error())
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, NewError(ErrConfiguration, "", path, err.Error())
	}
	return s, nil
}

// OrDefault returns s, or DefaultSettings() if s is nil.
func (s *Settings) OrDefault() *Settings {
	if s == nil {
		return DefaultSettings()
	}
	return s
}
