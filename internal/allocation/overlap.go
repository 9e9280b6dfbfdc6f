package allocation

// Overlaps reports whether two half-open stop-order segments
// [aFrom, aTo) and [bFrom, bTo) intersect.  Adjacent segments that
// share an endpoint do not overlap: a seat vacated at stop 5 may be
// re-occupied by a passenger boarding at stop 5.  This is the single
// predicate used everywhere a seat's occupancy is checked against a
// requested segment.
func Overlaps(aFrom, aTo, bFrom, bTo uint32) bool {
	return aFrom < bTo && aTo > bFrom
}

// ValidateSegment rejects inverted, zero-length or out-of-range
// segments before they reach the overlap engine.  maxStop is the
// highest stop order on the trip's route.
func ValidateSegment(from, to, maxStop uint32) error {
	if from < 1 || to <= from || to > maxStop {
		return ErrInvalidSegment
	}
	return nil
}
