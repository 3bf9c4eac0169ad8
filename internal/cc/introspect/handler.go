// Copyright 2025 The cctt Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package introspect

// Handler receives the structural events emitted while walking a token
// tree. Token arguments are indices into the tree's token slice; handlers
// may resolve them against the source but must not mutate the tree.
//
// An error returned from Start or from any event operation aborts the
// walk: the walker calls Abort and hands the error back to its caller. An
// error returned from Empty or Finish is handed back without a call to
// Abort.
type Handler interface {
	// There is no CCTT_INTROSPECT identifier anywhere.
	// Called instead of Start/Finish; no other event follows.
	Empty() error

	// There is a CCTT_INTROSPECT identifier somewhere.
	Start() error
	Finish() error

	// An error occurred after Start. When Abort is called, Finish won't be.
	Abort()

	// CCTT_INTROSPECT ( .... )
	//                 ^
	//                 `--------- attribs: the open parenthesis whose Pair
	//                            closes the argument list
	AddAttributes(attribs int) error
	ClearAttributes() error

	// namespace @name [:: @name] { .... }
	//             ^               ^
	//             |               `--------- last (exclusive)
	//             `------------------------- first
	// Also reused for struct bodies with first, first+1.
	EnterNamespace(first, last int) error
	LeaveNamespace() error

	// enum @name { @enumerator1, @enumerator2 = 10, @enumerator3 };
	// enum @name: uint32_t { @enumerator1, @enumerator2 = 10, @enumerator3 };
	// enum struct @name { @enumerator1, @enumerator2 = 10, @enumerator3 };
	// enum class  @name { @enumerator1, @enumerator2 = 10, @enumerator3 };
	EnterEnum(name int) error
	LeaveEnum() error
	Enumerator(name int) error

	// enum { @constant1, @constant2 = 10, @constant3 };
	// enum: int { @constant1, @constant2 = 10, @constant3 };
	IntegralConstant(name int) error

	// A named class/struct/union definition; emitted before the
	// EnterNamespace for its body.
	Structure(name int) error

	// One publicly visible base in a base list: the half-open token range
	// up to the next comma or the body brace.
	Parent(first, last int) error

	// int name;
	// int name = 10;
	// int* name(nullptr);
	// int name{10};
	// extern int name();
	// auto name() { return 10; }
	// static inline constexpr auto name() -> int;
	// auto name = 10;
	// decltype(auto) name() { return 10; }
	VariableOrFunction(name int) error
}
