package output

// Requirements describes what a real system-wide remapper would need. It is
// rendered as markdown by the info command and at startup.
const Requirements = `# Real implementation requirements

System-wide remapping needs a low-level keyboard hook on every platform.

## Windows
- A low-level keyboard hook (` + "`SetWindowsHookEx`" + ` with ` + "`WH_KEYBOARD_LL`" + `)
- Synthesized input through ` + "`SendInput`" + `
- Administrator rights for elevated windows

## macOS
- A Quartz event tap (` + "`CGEventTapCreate`" + `)
- Accessibility permission for the terminal or binary
  (System Settings → Privacy & Security → Accessibility)

## Linux
- Reading ` + "`/dev/input/event*`" + ` through evdev and re-emitting through uinput
- Root privileges or udev rules granting access to the input group
- Separate handling for X11 and Wayland sessions

## Security considerations
- Elevated privileges are required
- Antivirus and endpoint tools may flag the binary
- An escape mechanism must always be available

## Ethical usage
- Only on your own systems
- Clear user consent first
- An easy way to disable it
- Consider accessibility implications
`
