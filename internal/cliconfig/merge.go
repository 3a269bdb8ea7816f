package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if len(source.MockPaths) > 0 {
		target.MockPaths = append([]string(nil), source.MockPaths...)
		target.Sources["mockPaths"] = sourceType
	}
	if source.FetchTimeout != 0 {
		target.FetchTimeout = source.FetchTimeout
		target.Sources["fetchTimeout"] = sourceType
	}
	if len(source.IncludeHosts) > 0 {
		target.IncludeHosts = append([]string(nil), source.IncludeHosts...)
		target.Sources["includeHosts"] = sourceType
	}
	if len(source.ExcludeHosts) > 0 {
		target.ExcludeHosts = append([]string(nil), source.ExcludeHosts...)
		target.Sources["excludeHosts"] = sourceType
	}
	if len(source.IncludePaths) > 0 {
		target.IncludePaths = append([]string(nil), source.IncludePaths...)
		target.Sources["includePaths"] = sourceType
	}
	if len(source.ExcludePaths) > 0 {
		target.ExcludePaths = append([]string(nil), source.ExcludePaths...)
		target.Sources["excludePaths"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.ConfigFile != "" {
		target.ConfigFile = source.ConfigFile
		target.Sources["configFile"] = sourceType
	}
}
