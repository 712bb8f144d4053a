// SPDX-License-Identifier: MIT

package matrix

import "errors"

// ErrSingular is returned when inverting a matrix with |det| below SingularEps.
var ErrSingular = errors.New("matrix: singular matrix")

// SingularEps is the absolute determinant threshold under which a float
// matrix is treated as singular.
const SingularEps = 1e-12
