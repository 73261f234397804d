package logging

import "time"

// Field constructors
func String(key, value string) Field      { return Field{Key: key, Value: value} }
func Int(key string, value int) Field     { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain helpers
func Component(name string) Field { return String("component", name) }
func NodeID(id string) Field      { return String("node_id", id) }
func PairKey(key string) Field    { return String("pair_key", key) }
func Alpha(a float64) Field       { return Float64("alpha", a) }
func Tick(n int64) Field          { return Int64("tick", n) }
func Nodes(n int) Field           { return Int("nodes", n) }
func Links(n int) Field           { return Int("links", n) }
func ViewID(id string) Field      { return String("view_id", id) }
