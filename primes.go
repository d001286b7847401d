// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package cedd

import "math/big"

// Tables (caches and buckets of the unique table) use a prime number of
// entries so that the modulo in hash functions spreads keys evenly.

var smallPrimes = [...]int{3, 5, 7, 11, 13}

func hasEasyFactors(src int) bool {
	for _, p := range smallPrimes {
		if src != p && src%p == 0 {
			return true
		}
	}
	return false
}

// primeGte returns the smallest prime number greater or equal to src. We
// always return a value at least equal to 3.
func primeGte(src int) int {
	if src <= 3 {
		return 3
	}
	if src%2 == 0 {
		src++
	}
	for {
		// ProbablyPrime is 100% accurate for inputs less than 2⁶⁴.
		if !hasEasyFactors(src) && big.NewInt(int64(src)).ProbablyPrime(0) {
			return src
		}
		src += 2
	}
}
