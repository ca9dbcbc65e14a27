package strategy

// Weights are the per-property priorities a color scores candidates with.
type Weights struct {
	Capture      int
	FromBase     int
	FormBlock    int
	BlockMove    int
	FullMove     int
	PartialMove  int
	StuckInBlock int
	Rotation     int
	Mystery      int
}

// RedWeights: capture first, then leaving base, then distance covered.
var RedWeights = Weights{
	Capture:      1000,
	FromBase:     100,
	FullMove:     20,
	PartialMove:  10,
	StuckInBlock: -5,
}

// GreenWeights: forming blockades first, then leaving base, then blockade mobility.
var GreenWeights = Weights{
	FormBlock:   1000,
	FromBase:    100,
	BlockMove:   50,
	FullMove:    20,
	PartialMove: 10,
}

// YellowWeights: leaving base first, then capture.
var YellowWeights = Weights{
	FromBase:    1000,
	Capture:     100,
	FullMove:    20,
	PartialMove: 10,
}

// BlueWeights: round-robin rotation and mystery cell position.
var BlueWeights = Weights{
	Rotation:    40,
	Mystery:     30,
	FullMove:    20,
	PartialMove: 10,
}
