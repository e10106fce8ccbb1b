package constants

const ConfigFileName = "config.yml"
const LogFileMaxSizeMb = 50
const LogFileMaxBackups = 3

const APIV1Base = "/api/v1"

const DefaultPort = "9090"
const DefaultExecutionsPath = "/executions"
const DefaultFilteredExecutionsPath = "/api/get/executions"
const DefaultRequestTimeoutMs = 10000
const DefaultSessionIdleTimeoutSeconds = 1800
const DefaultMaxWorkers = 8
const DefaultMaxQueue = 64
const DefaultMaxSessions = 256

// DisplayTimeLayout renders timestamps as MM-DD-YYYY hh:mm:ss A
const DisplayTimeLayout = "01-02-2006 03:04:05 PM"

// MissingValuePlaceholder is shown for any cell whose accessor path cannot be resolved
const MissingValuePlaceholder = "-"

const SessionSweepIntervalSeconds = 30
