package ephem

import (
	"fmt"

	"github.com/soniakeys/meeus/julian"
)

// Epochs are carried internally as TDB seconds past J2000.0 rather than as
// Julian Dates: at a one-century offset a 64-bit JD has ~86 µs of ULP where
// seconds-past-J2000 keeps ~0.7 µs, matching the kernel's native unit.

// JDToTDBSeconds converts a Julian Date on the TDB scale to TDB seconds
// past J2000.0.
func JDToTDBSeconds(jd float64) float64 {
	return (jd - J2000JD) * SecondsPerDay
}

// TDBSecondsToJD converts TDB seconds past J2000.0 to a TDB Julian Date.
func TDBSecondsToJD(s float64) float64 {
	return J2000JD + s/SecondsPerDay
}

// JDToCenturies converts a TDB Julian Date to Julian centuries since J2000.0.
func JDToCenturies(jd float64) float64 {
	return (jd - J2000JD) / 36525
}

// CalendarToJD converts a Gregorian calendar date to a Julian Date on the
// same time scale as its inputs. The day may carry a fraction.
func CalendarToJD(y, m int, d float64) float64 {
	return julian.CalendarGregorianToJD(y, m, d)
}

// JDToCalendarDate converts a Julian Date back to a Gregorian calendar date.
func JDToCalendarDate(jd float64) (y, m int, d float64) {
	return julian.JDToCalendar(jd)
}

// Epoch is a TDB instant, canonical in seconds past J2000.0. JD TDB and UTC
// calendar values are I/O views obtained through the conversion helpers.
type Epoch struct {
	tdbS float64
}

// EpochFromTDBSeconds wraps TDB seconds past J2000.0.
func EpochFromTDBSeconds(s float64) Epoch {
	return Epoch{tdbS: s}
}

// EpochFromJDTDB wraps a TDB Julian Date.
func EpochFromJDTDB(jd float64) Epoch {
	return Epoch{tdbS: JDToTDBSeconds(jd)}
}

// TDBSeconds returns the canonical representation.
func (e Epoch) TDBSeconds() float64 { return e.tdbS }

// JDTDB returns the epoch as a TDB Julian Date.
func (e Epoch) JDTDB() float64 { return TDBSecondsToJD(e.tdbS) }

// UTCTime is a UTC calendar date and time with sub-second precision.
type UTCTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
}

func (u UTCTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%09.6fZ", u.Year, u.Month, u.Day, u.Hour, u.Minute, u.Second)
}

// JDUTC returns the Julian Date of this calendar instant on the UTC scale.
func (u UTCTime) JDUTC() float64 {
	dayFrac := float64(u.Day) + float64(u.Hour)/24 + float64(u.Minute)/1440 + u.Second/SecondsPerDay
	return CalendarToJD(u.Year, u.Month, dayFrac)
}

// UTCTimeFromJD converts a Julian Date on the UTC scale to calendar components.
func UTCTimeFromJD(jd float64) UTCTime {
	y, m, dayFrac := JDToCalendarDate(jd)
	day := int(dayFrac)
	totalSeconds := (dayFrac - float64(day)) * SecondsPerDay
	hour := int(totalSeconds / 3600)
	minute := int((totalSeconds - float64(hour)*3600) / 60)
	second := totalSeconds - float64(hour)*3600 - float64(minute)*60
	return UTCTime{Year: y, Month: m, Day: day, Hour: hour, Minute: minute, Second: second}
}
