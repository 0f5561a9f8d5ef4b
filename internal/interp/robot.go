package interp

// Robot is the capability interface a program drives. Every call may
// fail; a returned error is fatal to the run and is passed up unchanged
// (wrapped in a *Fault) to the caller of Run.
type Robot interface {
	// Actions
	Move() error
	TurnLeft() error
	TurnRight() error
	TurnAround() error
	SetShield(on bool) error
	TakeFuel() error
	IdleWait() error

	// Sensors
	Fuel() (int, error)
	OpponentLR() (int, error)
	OpponentFB() (int, error)
	NumBarrels() (int, error)
	ClosestBarrelLR() (int, error)
	ClosestBarrelFB() (int, error)
	BarrelLR(n int) (int, error)
	BarrelFB(n int) (int, error)
	DistanceToWall() (int, error)
}
