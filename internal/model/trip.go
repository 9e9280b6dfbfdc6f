package model

import "time"

// Trip instantiates a train against a route on a specific
// departure.  The route contributes an ordered stop sequence; all
// seat reservations reference a trip plus a half-open stop-order
// segment [from, to).
//
// Fields:
//  ID        – primary key identifier.
//  TrainID   – train operating this trip.
//  RouteName – human readable route description.
//  DepartsAt – scheduled departure of the first stop.
//  CreatedAt – creation timestamp.
type Trip struct {
	ID        string    // trips.id
	TrainID   string    // trips.train_id
	RouteName string    // trips.route_name
	DepartsAt time.Time // trips.departs_at
	CreatedAt time.Time // trips.created_at
}

// TripStop is one stop of a trip's route.  StopOrder is 1-based and
// strictly increasing along the route; travel segments are expressed
// as pairs of stop orders.
//
// Fields:
//  ID          – primary key identifier.
//  TripID      – trip to which the stop belongs.
//  StationName – name of the station at this stop.
//  StopOrder   – 1-based position of the stop on the route.
type TripStop struct {
	ID          string // trip_stops.id
	TripID      string // trip_stops.trip_id
	StationName string // trip_stops.station_name
	StopOrder   uint32 // trip_stops.stop_order (1-based)
}
