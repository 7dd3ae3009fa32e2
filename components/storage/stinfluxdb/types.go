package stinfluxdb

// DBParams provides various configuration options for influxDB.
type DBParams struct {
	URL    string
	Org    string
	Token  string
	Bucket string
}

// Enabled returns true if the influxDB export is configured.
func (p DBParams) Enabled() bool {
	return p.URL != "" && p.Bucket != ""
}
