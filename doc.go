/*
Lunabridge connects a host application runtime to a game engine main loop.

The host (an Android activity, a Qt widget, a golang.org/x/mobile app, a headless test driver)
calls a small set of entry points from its own threads: initialize, deinitialize, reload assets,
pause, resume, touch down/moved/up and the per-tick main loop. Lunabridge owns the engine state
machine behind those calls and guarantees that

  - lifecycle changes and frames never interleave,
  - touch events reach the game in the order the host reported them, and only while running,
  - a failed initialization leaves nothing acquired and can be retried,
  - a reload never shows a frame a half-loaded resource set.

Package lunabridge

Package lunabridge holds one process-wide engine bridge and exports the entry points a host binds
to. Hosts that need more than one engine, or tests, use engine/bridge directly.

	func main() {
		lunabridge.Setup(lunabridge.Options{Game: &MyGame{}, Renderer: myRenderer})
		if err := lunabridge.Initialize(800, 480, "Demo", apkPath, appDir, cacheDir); err != nil {
			log.Fatal(err)
		}
		for range ticker.C {
			lunabridge.MainLoop()
		}
	}

Configuration

The engine reads luna.ini (see engine/config). A missing file means defaults.

	[engine]
	log_level = info
	log_file = lunahost.log
	log_stderr = true
	max_fps = 60
	max_frame_delta_ms = 250
	frame_warn_ms = 50
	http_ip = 127.0.0.1
	http_port = 0

	[assets]
	dir = assets
	apk_prefix = assets/
	manifest = assets.manifest
	async_reload_group = assets
*/
package lunabridge
