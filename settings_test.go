/*
 * settings_test.go, part of chemrun.
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
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettings(t *testing.T) {
	text := `gaussian_command: mock-g16
scratch_dir: /tmp/chemrun
keep_scratch: true
`
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.GaussianCommand != "mock-g16" || s.ScratchDir != "/tmp/chemrun" || !s.KeepScratch {
		t.Errorf("loaded settings do not match the file: %+v", s)
	}
	//keys absent from the file keep their defaults
	if !s.CheckConvergence {
		t.Error("missing check_convergence key should keep the default true")
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSettings(filepath.Join(dir, "absent.yaml")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("missing file: got %v, want ErrConfiguration", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("gaussian_command: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(bad); !errors.Is(err, ErrConfiguration) {
		t.Errorf("malformed YAML: got %v, want ErrConfiguration", err)
	}
}

func TestOrDefault(t *testing.T) {
	var s *Settings
	d := s.OrDefault()
	if d == nil || d.GaussianCommand != "g16" || !d.CheckConvergence {
		t.Errorf("nil settings should default: %+v", d)
	}
	own := &Settings{GaussianCommand: "other"}
	if own.OrDefault() != own {
		t.Error("non-nil settings should be returned unchanged")
	}
}
