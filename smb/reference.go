package smb

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/smbmpc/spatialmath"
	"go.viam.com/smbmpc/utils"
)

// TargetTrajectories is a reference trajectory: time-stamped poses in the flat state layout.
// TimeTrajectory is sorted ascending and has one entry per state.
type TargetTrajectories struct {
	TimeTrajectory  []float64   `json:"time_trajectory"`
	StateTrajectory [][]float64 `json:"state_trajectory"`
}

// NewTargetTrajectories copies times and states into a new TargetTrajectories.
func NewTargetTrajectories(times []float64, states [][]float64) *TargetTrajectories {
	tt := &TargetTrajectories{
		TimeTrajectory:  append([]float64(nil), times...),
		StateTrajectory: make([][]float64, len(states)),
	}
	for i, s := range states {
		tt.StateTrajectory[i] = append([]float64(nil), s...)
	}
	return tt
}

// Len returns the number of samples.
func (tt *TargetTrajectories) Len() int {
	return len(tt.StateTrajectory)
}

// Pose returns sample i as a Pose.
func (tt *TargetTrajectories) Pose(i int) spatialmath.Pose {
	return PoseFromState(tt.StateTrajectory[i])
}

// Clone returns a deep copy.
func (tt *TargetTrajectories) Clone() *TargetTrajectories {
	return NewTargetTrajectories(tt.TimeTrajectory, tt.StateTrajectory)
}

// String prints a table of the samples with their time, position, and heading.
func (tt *TargetTrajectories) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Time", "Translation", "Orientation"})
	for i := range tt.StateTrajectory {
		pose := tt.Pose(i)
		pt := pose.Point()
		q := pose.Quaternion()
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.3f", tt.TimeTrajectory[i]),
			fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pt.X, pt.Y, pt.Z),
			fmt.Sprintf("Yaw:%.2f, W:%.3f, X:%.3f, Y:%.3f, Z:%.3f",
				utils.RadToDeg(spatialmath.Yaw(q)), q.Real, q.Imag, q.Jmag, q.Kmag),
		})
	}
	return t.Render()
}

// GetParameters returns the reference pose at time as a StateDim parameter vector.
//
// A single sample is returned as is regardless of time. Before the first sample or after the last
// the nearest end is held. Between samples the position is interpolated linearly and the
// orientation by shortest-arc slerp, using the first sample whose time is at or after the query
// time and the one before it. When several samples share a time, a query at exactly that time
// returns the first of them and later queries interpolate away from the last.
//
// The trajectory is assumed to satisfy ValidateTargetTrajectories; it is not checked here.
func GetParameters(time float64, traj *TargetTrajectories) []float64 {
	times := traj.TimeTrajectory
	states := traj.StateTrajectory

	if len(states) == 1 {
		return sampleParameters(states[0])
	}
	last := len(times) - 1
	if time <= times[0] {
		return sampleParameters(states[0])
	}
	if time >= times[last] {
		return sampleParameters(states[last])
	}

	// smallest i with times[i] >= time; 1 <= i <= last here for any real time
	i := sort.SearchFloat64s(times, time)
	if i > last {
		i = last
	}
	t0, t1 := times[i-1], times[i]
	alpha := 1.0
	if dt := t1 - t0; dt > 0 {
		alpha = utils.Clamp((time-t0)/dt, 0, 1)
	}

	reference := spatialmath.Interpolate(PoseFromState(states[i-1]), PoseFromState(states[i]), alpha)
	return StateFromPose(reference)
}

func sampleParameters(state []float64) []float64 {
	return append(make([]float64, 0, StateDim), state[:StateDim]...)
}
