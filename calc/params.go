/*
 * params.go, part of chemrun.
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
	"sort"

	chem "github.com/emoreno/chemrun"
)

// Params maps calculator option names to values: strings, numbers, string
// lists, or the Remove marker. An empty string is a meaningful value (a bare
// keyword for programs like Gaussian); removal is only ever expressed with
// Remove, never with nil or "".
type Params map[string]any

type removeMarker struct{}

// Remove is the explicit "unset this key" marker. Assigning it to a key in
// an override set deletes the key from the merged result even when the
// defaults define it.
var Remove removeMarker

// Merge merges overrides onto defaults and returns a new Params. Keys only
// in defaults are kept; override values replace default values; a Remove
// value deletes the key. Neither input is modified, values pass through
// as-is, and a nil overrides just copies the defaults. Keys set to Remove in
// the defaults themselves are dropped unless an override replaces them.
func Merge(defaults, overrides Params) Params {
	merged := make(Params, len(defaults)+len(overrides))
	for k, v := range defaults {
		if _, drop := v.(removeMarker); drop {
			continue
		}
		merged[k] = v
	}
	for k, v := range overrides {
		if _, drop := v.(removeMarker); drop {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}

// SortedKeys returns the keys of p in lexical order, so anything written
// from a Params is deterministic.
func (p Params) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Config is the fully merged parameter set plus the charge and spin
// multiplicity, passed opaquely to calculator constructors. It lives only
// for the duration of one recipe call.
type Config struct {
	Params Params
	Charge int
	Multi  int
}

// Validate reports configuration problems detectable before execution.
func (c *Config) Validate(program string) error {
	if c.Multi < 1 {
		return chem.NewError(chem.ErrConfiguration, program, "",
			"spin multiplicity must be a positive integer")
	}
	for k, v := range c.Params {
		if _, bad := v.(removeMarker); bad {
			return chem.NewError(chem.ErrConfiguration, program, "",
				"merged parameters still contain the removal marker for key "+k)
		}
	}
	return nil
}
