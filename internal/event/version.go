package event

// Version constants for the trace format and the robot.
const (
	// TraceVersion is the version of the recorded event layout.
	TraceVersion = "1"

	// RobotVersion is the nono robot version.
	RobotVersion = "0.1.0"
)
