package smb

import (
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/smbmpc/logging"
)

// ReferenceManager holds the reference trajectory a running controller tracks. Goals can be
// replaced from any goroutine while the controller keeps resolving parameters; each resolution
// sees one complete trajectory.
type ReferenceManager struct {
	mu           sync.RWMutex
	trajectories *TargetTrajectories
	currentTime  float64
	logger       logging.Logger
}

// NewReferenceManager returns a manager tracking a copy of initial.
func NewReferenceManager(initial *TargetTrajectories, logger logging.Logger) (*ReferenceManager, error) {
	rm := &ReferenceManager{logger: logger}
	if err := rm.SetTargetTrajectories(initial); err != nil {
		return nil, err
	}
	return rm, nil
}

// SetTargetTrajectories validates traj and swaps it in. The manager keeps its own copy.
func (rm *ReferenceManager) SetTargetTrajectories(traj *TargetTrajectories) error {
	if err := ValidateTargetTrajectories(traj); err != nil {
		return errors.Wrap(err, "rejected target trajectories")
	}
	snapshot := traj.Clone()

	rm.mu.Lock()
	rm.trajectories = snapshot
	rm.mu.Unlock()

	rm.logger.Debugw("target trajectories updated",
		"samples", snapshot.Len(),
		"start", snapshot.TimeTrajectory[0],
		"end", snapshot.TimeTrajectory[snapshot.Len()-1])
	return nil
}

// TargetTrajectories returns a copy of the trajectory currently tracked.
func (rm *ReferenceManager) TargetTrajectories() *TargetTrajectories {
	return rm.snapshot().Clone()
}

// Parameters resolves the reference pose at time against the current trajectory.
func (rm *ReferenceManager) Parameters(time float64) []float64 {
	return GetParameters(time, rm.snapshot())
}

// CurrentParameters resolves the reference pose at the current time.
func (rm *ReferenceManager) CurrentParameters() []float64 {
	rm.mu.RLock()
	traj, now := rm.trajectories, rm.currentTime
	rm.mu.RUnlock()
	return GetParameters(now, traj)
}

// CurrentTime returns the controller time last recorded with SetCurrentTime.
func (rm *ReferenceManager) CurrentTime() float64 {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.currentTime
}

// SetCurrentTime records the controller time.
func (rm *ReferenceManager) SetCurrentTime(time float64) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.currentTime = time
}

// stored trajectories are never mutated, so the pointer is safe to use after unlocking
func (rm *ReferenceManager) snapshot() *TargetTrajectories {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.trajectories
}
