package entity

import "time"

// Now возвращает текущее время в UTC с точностью до микросекунды, как его хранит Postgres.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
