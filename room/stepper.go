package room

/*
 * fixed step tick counter
 * - every tick advances the session by the same elapsed value
 * - tracks how long a finished round has been on show
 */

//face info
type Stepper struct {
	step      float32
	tickCount uint32
	overTime  float32
}

//construct
func NewStepper(step float32) *Stepper {
	//self init
	this := &Stepper{
		step: step,
	}
	return this
}

//reset for a new round, tick count keeps running
func (f *Stepper) Reset() {
	f.overTime = 0
}

func (f *Stepper) GetStep() float32 {
	return f.step
}

func (f *Stepper) GetTickCount() uint32 {
	return f.tickCount
}

//gen tick
func (f *Stepper) Tick() uint32 {
	f.tickCount++
	return f.tickCount
}

//accumulate time spent over, returns seconds since the round ended
func (f *Stepper) MarkOver(isOver bool) float32 {
	if !isOver {
		f.overTime = 0
		return 0
	}
	f.overTime += f.step
	return f.overTime
}
