// SPDX-License-Identifier: EPL-2.0

// Package cheader renders 16-bit PCM as a C header that firmware can
// compile in and stream to an I2S DAC.
//
// The layout is fixed because embedded build tooling depends on it: a
// comment line, an include guard, AUDIO_SAMPLE_RATE_HZ, AUDIO_NUM_CHANNELS
// and AUDIO_BITS_PER_SAMPLE macros, a static const int16_t audio_track[]
// array with ValuesPerLine values per line, and sample count and size
// macros derived from the array. Empty input yields an empty array.
package cheader
