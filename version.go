package witcodec

// SchemaVersion is the version string every wit binary stream is tagged
// with. Decoders reject streams whose leading version string does not match
// the version they were asked to accept.
const SchemaVersion = "wit-schema-version-0.1.0"
