package cli

// Export internal functions for testing.

// RunPrompt exports runPrompt for testing.
var RunPrompt = runPrompt

// RunGenerate exports runGenerate for testing.
var RunGenerate = runGenerate

// RunForm exports runForm for testing.
var RunForm = runForm

// RunPlaceholders exports runPlaceholders for testing.
var RunPlaceholders = runPlaceholders

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// ParseStyle exports parseStyle for testing.
var ParseStyle = parseStyle

// RenderOutput exports renderOutput for testing.
var RenderOutput = renderOutput

// ResolveProvider exports resolveProvider for testing.
var ResolveProvider = resolveProvider

// ParseAssignment exports parseAssignment for testing.
var ParseAssignment = parseAssignment

// ReadValuesFile exports readValuesFile for testing.
var ReadValuesFile = readValuesFile

// WriteFileAtomic exports writeFileAtomic for testing.
var WriteFileAtomic = writeFileAtomic

// GenerateOptions exports generateOptions for testing.
type GenerateOptions = generateOptions

// ReadSamplingFlags exports readSamplingFlags for testing.
var ReadSamplingFlags = readSamplingFlags

// DefaultOutputFilename exports defaultOutputFilename for testing.
var DefaultOutputFilename = defaultOutputFilename

// SamplingOptions exports samplingOptions for testing.
type SamplingOptions = samplingOptions
