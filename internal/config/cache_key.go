package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ClassTimetableKey returns the cache key for a class's current timetable.
func (r *CacheKeyStruct) ClassTimetableKey(classID int) string {
	return fmt.Sprintf("class:%d:timetable", classID)
}

// TimetableEventsChannel returns the Redis PubSub channel name carrying
// timetable change events.
func (r *CacheKeyStruct) TimetableEventsChannel() string {
	return "timetable:events"
}

var CacheKey = NewCacheKeyStruct()
