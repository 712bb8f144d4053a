// SPDX-License-Identifier: MIT

package cluster_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/xtalgraph/cluster"
	"github.com/katalvlaran/xtalgraph/config"
	"github.com/katalvlaran/xtalgraph/diag"
	"github.com/katalvlaran/xtalgraph/symmetry"
	"github.com/katalvlaran/xtalgraph/telemetry"
	"github.com/katalvlaran/xtalgraph/unitcell"
)

func obs(id, sg string, p1 [6]float64) cluster.Observation {
	return cluster.Observation{ID: id, P1Cell: p1, SpaceGroup: sg, Cell: p1}
}

func run(t *testing.T, p config.Params, in []cluster.Observation, opts ...cluster.Option) *cluster.Result {
	t.Helper()
	c, err := cluster.New(p, opts...)
	require.NoError(t, err)
	res, err := c.Run(context.Background(), in)
	require.NoError(t, err)

	return res
}

func groupIDs(res *cluster.Result) [][]string {
	out := make([][]string, len(res.Groups))
	for i, g := range res.Groups {
		out[i] = g.IDs
	}

	return out
}

func TestRun_NearlyIdenticalPair(t *testing.T) {
	res := run(t, config.Default(), []cluster.Observation{
		obs("a", "P1", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("b", "P1", [6]float64{10.02, 9.99, 10.01, 90.1, 89.9, 90.0}),
	})
	assert.Equal(t, [][]string{{"a", "b"}}, groupIDs(res))
	assert.Equal(t, 1, res.Stats.Similar)
	require.NoError(t, res.Groups[0].Err)
	assert.InDelta(t, 10.01, res.Groups[0].Average.A, 1e-9)
}

func TestRun_DoubledCellFollowsDeterminantBound(t *testing.T) {
	in := []cluster.Observation{
		obs("a", "P1", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("b", "P1", [6]float64{10, 10, 20, 90, 90, 90}),
	}

	res := run(t, config.Default(), in)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, groupIDs(res))

	p := config.Default()
	p.MaxDeterminant = 2
	res = run(t, p, in)
	assert.Equal(t, [][]string{{"a", "b"}}, groupIDs(res))
	assert.Equal(t, 1, res.Stats.Reindexed)
}

func TestRun_SupercellAveragesOnMatchingAxes(t *testing.T) {
	p := config.Default()
	p.MaxDeterminant = 4
	res := run(t, p, []cluster.Observation{
		obs("a", "P1", [6]float64{30, 31, 32, 89, 91, 90}),
		obs("b", "P1", [6]float64{60, 62, 32, 90, 90, 90}),
	})
	require.Equal(t, [][]string{{"a", "b"}}, groupIDs(res))
	require.NoError(t, res.Groups[0].Err)

	avg := res.Groups[0].Average
	assert.InDelta(t, 30, avg.A, 1e-6)
	assert.InDelta(t, 31, avg.B, 1e-6)
	assert.InDelta(t, 32, avg.C, 1e-6)
	assert.InDelta(t, 89.5, avg.Alpha, 1e-6)
	assert.InDelta(t, 90.5, avg.Beta, 1e-6)
}

func TestRun_LargestGroupFirst(t *testing.T) {
	res := run(t, config.Default(), []cluster.Observation{
		obs("tri", "P1", [6]float64{7.1, 13.3, 19.7, 71, 83, 101}),
		obs("cub1", "P23", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("cub2", "P23", [6]float64{10.04, 9.98, 10.01, 90, 90, 90}),
	})
	assert.Equal(t, [][]string{{"cub1", "cub2"}, {"tri"}}, groupIDs(res))
	assert.Equal(t, []string{"cub1", "cub2"}, res.Store.LargestGroupMembers())

	rec, ok := res.Recommend()
	require.True(t, ok)
	assert.Equal(t, "P23", rec.PointGroup.Short)
}

func TestRun_MajorityPointGroupWins(t *testing.T) {
	tet := [6]float64{50, 50, 70, 90, 90, 90}
	res := run(t, config.Default(), []cluster.Observation{
		obs("d1", "P422", tet),
		obs("d2", "P 41 21 2", [6]float64{50.1, 49.9, 70.2, 90, 90, 90}),
		obs("d3", "P 43 21 2", [6]float64{49.8, 50.2, 69.9, 90, 90, 90}),
		obs("d4", "P4", [6]float64{50.2, 50.1, 70.1, 90, 90, 90}),
	})
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	require.NoError(t, g.Err)

	freq := map[string]int{}
	total := 0
	for _, c := range g.Candidates {
		freq[c.Symmetry.PointGroup.Short] += c.Frequency
		total += c.Frequency
	}
	assert.Equal(t, 3, freq["P422"])
	assert.Equal(t, 1, freq["P4"])
	assert.LessOrEqual(t, total, len(g.Members))

	rec, ok := res.Recommend()
	require.True(t, ok)
	assert.Equal(t, "P422", rec.PointGroup.Short)

	ref := symmetry.Symmetry{Cell: unitcell.MustNew(50, 50, 70, 90, 90, 90)}
	ref.PointGroup, _ = symmetry.PointGroupByNumber(75)
	got, ok := res.RecommendFor(ref)
	require.True(t, ok)
	assert.Equal(t, "P4", got.PointGroup.Short)
}

func TestRun_ExclusionsAreNotFatal(t *testing.T) {
	var rec diag.Recorder
	m, err := telemetry.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	res := run(t, config.Default(), []cluster.Observation{
		obs("ok", "P1", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("", "P1", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("flat", "P1", [6]float64{10, 10, 10, 150, 150, 150}),
		obs("centro", "P 21/c", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("ok", "P1", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("neg", "P1", [6]float64{-10, 10, 10, 90, 90, 90}),
	}, cluster.WithSink(&rec), cluster.WithMetrics(m))

	assert.Equal(t, [][]string{{"ok"}}, groupIDs(res))
	require.Len(t, res.Excluded, 5)
	reasons := map[string]string{}
	for _, e := range res.Excluded {
		reasons[e.ID] = e.Reason
		assert.Error(t, e.Err)
	}
	assert.Equal(t, cluster.ReasonInvalid, reasons[""])
	assert.Equal(t, cluster.ReasonCell, reasons["flat"])
	assert.Equal(t, cluster.ReasonSpaceGroup, reasons["centro"])
	assert.Equal(t, cluster.ReasonDuplicate, reasons["ok"])
	assert.Equal(t, cluster.ReasonInvalid, reasons["neg"])
	assert.ErrorIs(t, res.Excluded[3].Err, cluster.ErrDuplicateID)

	assert.Len(t, rec.ByCode(diag.CodeObservationExcluded), 4)
	assert.Len(t, rec.ByCode(diag.CodeDuplicateID), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Excluded.WithLabelValues(cluster.ReasonDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Groups))
}

func TestRun_Empty(t *testing.T) {
	res := run(t, config.Default(), nil)
	assert.Empty(t, res.Groups)
	assert.Zero(t, res.Store.Len())
	_, ok := res.Recommend()
	assert.False(t, ok)

	rep := res.Report(nil)
	assert.Empty(t, rep.Groups)
	assert.Nil(t, rep.Recommended)
}

func TestRun_Cancelled(t *testing.T) {
	c, err := cluster.New(config.Default())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Run(ctx, []cluster.Observation{
		obs("a", "P1", [6]float64{10, 10, 10, 90, 90, 90}),
		obs("b", "P1", [6]float64{11, 12, 13, 90, 90, 90}),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Deterministic(t *testing.T) {
	in := []cluster.Observation{
		obs("a", "P222", [6]float64{40, 50, 60, 90, 90, 90}),
		obs("b", "P222", [6]float64{50.2, 60.1, 40.1, 90, 90, 90}),
		obs("c", "P1", [6]float64{60, 40, 50, 90, 90, 90}),
		obs("d", "P6", [6]float64{70, 70, 100, 90, 90, 120}),
	}
	p := config.Default()
	first := run(t, p, in, cluster.WithWorkers(1))
	for w := 2; w <= 4; w++ {
		again := run(t, p, in, cluster.WithWorkers(w))
		assert.Equal(t, first.Report(nil), again.Report(nil))
	}
}

func TestNew_Errors(t *testing.T) {
	p := config.Default()
	p.TolAngle = 0
	_, err := cluster.New(p)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = cluster.New(config.Default(), cluster.WithWorkers(-1))
	assert.ErrorIs(t, err, cluster.ErrOptionViolation)
}

func TestReport_Marshal(t *testing.T) {
	res := run(t, config.Default(), []cluster.Observation{
		obs("a", "P422", [6]float64{50, 50, 70, 90, 90, 90}),
		obs("b", "P422", [6]float64{50.1, 50, 70, 90, 90, 90}),
	})
	rep := res.Report(nil)
	require.NotNil(t, rep.Recommended)
	assert.Equal(t, "P422", rep.Recommended.PointGroup)

	y, err := yaml.Marshal(rep)
	require.NoError(t, err)
	assert.Contains(t, string(y), "point_group: P422")
	assert.Contains(t, string(y), "frequency: 2")

	j, err := json.Marshal(rep)
	require.NoError(t, err)
	var back cluster.Report
	require.NoError(t, json.Unmarshal(j, &back))
	assert.Equal(t, rep, back)
}
