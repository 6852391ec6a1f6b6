package vitals

// rateSeries is a fixed ring of beat-to-beat rates. Empty slots hold 0 and
// are skipped when averaging.
type rateSeries struct {
	buffer [RateSize]uint8
	idx    int
}

func (t *rateSeries) add(bpm uint8) {
	t.buffer[t.idx] = bpm
	t.idx++
	t.idx %= len(t.buffer)
}

// mean returns the integer mean of the non-zero slots and how many there
// are.
func (t *rateSeries) mean() (avg, count int) {
	sum := 0
	for _, b := range t.buffer {
		if b != 0 {
			sum += int(b)
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}

	return sum / count, count
}

// clear zeroes every slot. The write cursor is left where it is.
func (t *rateSeries) clear() {
	t.buffer = [RateSize]uint8{}
}
