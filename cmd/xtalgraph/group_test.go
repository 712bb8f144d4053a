// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/xtalgraph/cluster"
)

const observationsYAML = `observations:
  - id: d1
    p1_cell: [50, 50, 70, 90, 90, 90]
    space_group: P 4 2 2
    cell: [50, 50, 70, 90, 90, 90]
  - id: d2
    p1_cell: [50.1, 49.9, 70.2, 90, 90, 90]
    space_group: P41212
    cell: [50.1, 49.9, 70.2, 90, 90, 90]
  - id: d3
    p1_cell: [49.9, 50.1, 69.9, 90, 90, 90]
    space_group: P4
    cell: [49.9, 50.1, 69.9, 90, 90, 90]
  - id: bad
    p1_cell: [10, 10, 10, 150, 150, 150]
    space_group: P1
    cell: [10, 10, 10, 150, 150, 150]
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestGroup_YAMLFromStdin(t *testing.T) {
	out, stderr, err := execute(t, observationsYAML, "group")
	require.NoError(t, err)

	var rep cluster.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Groups, 1)
	assert.Equal(t, []string{"d1", "d2", "d3"}, rep.Groups[0].Members)
	require.NotNil(t, rep.Recommended)
	assert.Equal(t, "P422", rep.Recommended.PointGroup)
	require.Len(t, rep.Excluded, 1)
	assert.Equal(t, "bad", rep.Excluded[0].ID)
	assert.Contains(t, stderr, "observation.excluded")
}

func TestGroup_JSONWithReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(observationsYAML), 0o600))

	out, _, err := execute(t, "", "group", "--input", path, "--format", "json",
		"--reference", "P41", "--reference-cell", "50,50,70,90,90,90")
	require.NoError(t, err)

	var rep cluster.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotNil(t, rep.Recommended)
	assert.Equal(t, "P4", rep.Recommended.PointGroup)
}

func TestGroup_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("tol_length: 0.001\n"), 0o600))

	// 0.001 splits the slightly different cells apart
	out, _, err := execute(t, observationsYAML, "group", "--config", cfg)
	require.NoError(t, err)
	var rep cluster.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Groups, 3)

	out, _, err = execute(t, observationsYAML, "group", "--config", cfg, "--tol-length", "0.1")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Groups, 1)
}

func TestGroup_MaxCoefficientFlag(t *testing.T) {
	// out of range from the environment, rescued by the flag
	t.Setenv("XTALGRAPH_MAX_COEFFICIENT", "9")
	_, _, err := execute(t, observationsYAML, "group")
	assert.Error(t, err)

	out, _, err := execute(t, observationsYAML, "group", "--max-coefficient", "1")
	require.NoError(t, err)
	var rep cluster.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Groups, 1)

	_, _, err = execute(t, observationsYAML, "group", "--max-coefficient", "0")
	assert.Error(t, err)
}

func TestGroup_Errors(t *testing.T) {
	_, _, err := execute(t, observationsYAML, "group", "--format", "xml")
	assert.ErrorIs(t, err, errFormat)

	_, _, err = execute(t, observationsYAML, "group", "--tol-angle", "0")
	assert.Error(t, err)

	_, _, err = execute(t, observationsYAML, "group", "--reference", "P 21/c")
	assert.Error(t, err)

	_, _, err = execute(t, observationsYAML, "group", "--reference", "P4", "--reference-cell", "1,2,3")
	assert.Error(t, err)

	_, _, err = execute(t, "observations: [", "group")
	assert.Error(t, err)

	_, _, err = execute(t, "", "group", "--log-level", "loud")
	assert.Error(t, err)
}
