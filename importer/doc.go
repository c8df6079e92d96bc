// Package importer persists downloaded connection profiles.
//
// Two sinks implement interfaces.ImportSink:
//
//   - ConfigManagerSink hands the profile to the OpenVPN 3 Linux
//     configuration manager (net.openvpn.v3.configuration) over the system
//     D-Bus. This is the normal path on a machine running openvpn3.
//   - FileSink writes the profile plus a YAML metadata sidecar into a local
//     directory, for hosts without the configuration manager or for
//     inspecting what the server returned.
//
// Both return a handle whose SetLockedDown restricts later readback of the
// profile content: the configuration manager's locked_down property for the
// D-Bus sink, owner-read-only file permissions for the file sink.
package importer
