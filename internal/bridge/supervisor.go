package bridge

// SimulationMode is the engine run mode requested through the supervisor.
type SimulationMode int

const (
	ModePause SimulationMode = iota
	ModeRealTime
	ModeFastForward
)

// Supervisor abstracts the simulation engine's privileged API. The engine
// itself (device handles, scene tree, window) is an external collaborator;
// the bridge only needs these calls to execute environment-control and
// frame-capture commands.
//
// A nil Supervisor on the receiving side means the producer does not hold
// supervisory capability: privileged commands log a warning and no-op.
type Supervisor interface {
	// SetMode switches the engine between pause, real-time and
	// fast-forward execution.
	SetMode(mode SimulationMode) error

	// Reset restores the simulation to its initial state, keeping the
	// world loaded. Controller processes keep running.
	Reset() error

	// ReloadWorld reloads the world file. This restarts the controller
	// process — everything in producer memory, including command dedup
	// state, is lost.
	ReloadWorld() error

	// Step advances the simulation by ms milliseconds while paused.
	Step(ms int) error

	// ExportImage renders the main view to an image file at path.
	// Quality is 1-100 for lossy formats.
	ExportImage(path string, quality int) error

	// BasicTimeStep returns the world's basic time step in milliseconds.
	BasicTimeStep() float64
}
