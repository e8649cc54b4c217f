package config

import "testing"

func TestMySQLDSNCountsMatchedRows(t *testing.T) {
	cases := map[string]string{
		"u:p@tcp(db:3306)/fleet":                       "u:p@tcp(db:3306)/fleet?clientFoundRows=true",
		"u:p@tcp(db:3306)/fleet?parseTime=true":        "u:p@tcp(db:3306)/fleet?parseTime=true&clientFoundRows=true",
		"u:p@tcp(db:3306)/fleet?clientFoundRows=false": "u:p@tcp(db:3306)/fleet?clientFoundRows=false",
	}
	for in, want := range cases {
		if got := mysqlDSN(in); got != want {
			t.Fatalf("mysqlDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB(Env{DBDriver: "postgres", DBDSN: "x"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
