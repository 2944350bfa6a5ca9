package engine

import "testing"

func TestMain(m *testing.M) {
	InitTables()
	m.Run()
}
