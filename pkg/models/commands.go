package models

// CommandType tags a command record dispatched to the EW core.
type CommandType string

const (
	CommandSetECCM        CommandType = "SET_ECCM"
	CommandIFFInterrogate CommandType = "IFF_INTERROGATE"
	CommandDropChaff      CommandType = "DROP_CHAFF"
)

// Command is a tagged request record. Only the fields relevant to the
// tagged type are read; the rest stay zero.
type Command struct {
	Type CommandType `json:"cmd"`

	// SET_ECCM
	RadarID   string      `json:"radarId,omitempty"`
	Parameter string      `json:"parameter,omitempty"`
	Value     interface{} `json:"value,omitempty"`

	// IFF_INTERROGATE (RadarID shared with SET_ECCM)
	TargetID  string `json:"targetId,omitempty"`
	Mode      string `json:"mode,omitempty"`
	TargetPos *Vec3  `json:"targetPos,omitempty"`
	RadarPos  *Vec3  `json:"radarPos,omitempty"`

	// DROP_CHAFF
	Position *Vec3    `json:"position,omitempty"`
	Velocity *Vec3    `json:"velocity,omitempty"`
	RCS      *float64 `json:"rcs,omitempty"`
}

// CommandResult is the uniform response shape for every command. Extra
// carries command-specific payload such as an assigned cloud ID or an IFF
// classification.
type CommandResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Extra   map[string]interface{} `json:"extra,omitempty"`
}

// Failure builds a failed result with the given message.
func Failure(message string) CommandResult {
	return CommandResult{Success: false, Message: message}
}

// Ok builds a successful result.
func Ok(message string) CommandResult {
	return CommandResult{Success: true, Message: message}
}
