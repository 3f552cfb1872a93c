package sparsehash

// debug gates the package's internal sanity checks. It is compiled in but
// inert by default; flip it to true locally to have sparseArrayGroup.set
// panic if a group's count ever disagrees with the popcount of its bitmap.
// It prints no traces and adds no checks to the probing paths.
const debug = false
