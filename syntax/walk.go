// Copyright 2024-2025 Cursive Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

import "iter"

// Walk returns a preorder iterator over n and every node beneath it.
// Explicitly absent children are skipped, not yielded.
func Walk(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n, yield)
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if n.IsZero() {
		return true
	}
	if !yield(n) {
		return false
	}

	lay := n.layout()
	if lay == nil {
		return true
	}
	for _, child := range lay.children {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}
