package constvars

const (
	URLParamBerichtID = "bericht_id"
)
