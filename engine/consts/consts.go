package consts

import "time"

// Tunable Options
const (
	// For Frame Driver
	// MAX_FPS is the frame rate hosts should drive MainLoop at when they own a free timer
	MAX_FPS = 60
	// MAX_FRAME_DELTA is the largest simulation step a single frame may advance
	MAX_FRAME_DELTA = time.Millisecond * 250
	// FRAME_WARN_THRESHOLD is the frame duration above which opmon logs a warning
	FRAME_WARN_THRESHOLD = time.Millisecond * 50
	// FPS_SAMPLE_INTERVAL is the window the FPS counter averages over
	FPS_SAMPLE_INTERVAL = time.Second

	// For Lifecycle
	// LIFECYCLE_OP_WARN_THRESHOLD is the duration above which initialize/deinitialize/reload are reported
	LIFECYCLE_OP_WARN_THRESHOLD = time.Second

	// For Input
	// INPUT_QUEUE_INITIAL_CAP is the initial capacity of the touch event buffer after each drain
	INPUT_QUEUE_INITIAL_CAP = 16

	// For Async Jobs
	// ASYNC_JOB_QUEUE_MAXLEN is the max number of pending jobs per async group
	ASYNC_JOB_QUEUE_MAXLEN = 64
	// ASSETS_ASYNC_GROUP is the async group asset reloads run in
	ASSETS_ASYNC_GROUP = "assets"

	// For Assets
	// ASSETS_DIR is the asset directory relative to the app folder
	ASSETS_DIR = "assets"
	// APK_ASSETS_PREFIX is the prefix of asset entries inside an apk archive
	APK_ASSETS_PREFIX = "assets/"
	// ASSETS_MANIFEST_FILE is the manifest written to the cache directory after each load
	ASSETS_MANIFEST_FILE = "assets.manifest"

	// For Operation Monitor
	// OPMON_DUMP_INTERVAL is the interval hosts print opmon infos to the log, 0 to disable
	OPMON_DUMP_INTERVAL = time.Minute
)

// Debug Options
const (
	// DEBUG_TOUCHES prints every touch event applied to the game
	DEBUG_TOUCHES = false
	// DEBUG_LIFECYCLE prints redundant lifecycle calls that are silently ignored
	DEBUG_LIFECYCLE = true
	// DEBUG_ASSETS prints every asset file the loader visits
	DEBUG_ASSETS = false
)
